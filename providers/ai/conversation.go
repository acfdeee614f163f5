package ai

// Conversation is the provider-agnostic representation of one chat exchange:
// an ordered sequence of turns, an optional system prompt, and a parameter
// set. A Conversation is owned by a single chat invocation; the With* builders
// return modified copies rather than mutating in place, so stored client
// defaults never alias a request in flight.
type Conversation struct {
	Model        string
	SystemPrompt string
	Turns        []Message
	Params       Params
}

// FromPrompt builds a Conversation holding a single user turn.
func FromPrompt(text string) Conversation {
	return Conversation{
		Turns: []Message{{Role: RoleUser, Content: text}},
	}
}

// FromMessages builds a Conversation from an explicit ordered sequence of
// turns. Every role is validated against the closed {user, model} vocabulary;
// the first offending entry fails with an [InvalidRoleError] reporting its
// position. An empty sequence fails with a [ValidationError].
func FromMessages(messages []Message) (Conversation, error) {
	if len(messages) == 0 {
		return Conversation{}, &ValidationError{Message: "messages must be a non-empty sequence of {role, content}"}
	}

	turns := make([]Message, len(messages))
	for i, m := range messages {
		if !m.Role.Valid() {
			return Conversation{}, &InvalidRoleError{Position: i, Role: string(m.Role)}
		}
		turns[i] = m
	}

	return Conversation{Turns: turns}, nil
}

// WithModel returns a copy of the conversation targeting the given model.
func (c Conversation) WithModel(model string) Conversation {
	c.Model = model
	return c
}

// WithSystemPrompt returns a copy of the conversation with the system prompt
// set. Where the vendor's wire format places it (dedicated field or synthetic
// leading turn) is an adapter concern.
func (c Conversation) WithSystemPrompt(text string) Conversation {
	c.SystemPrompt = text
	return c
}

// WithParams returns a copy of the conversation with the parameter set
// replaced. The set is cloned so later caller mutations cannot leak in.
func (c Conversation) WithParams(params Params) Conversation {
	c.Params = params.Clone()
	return c
}
