package flow

import (
	"fmt"
	"strings"
)

// Token is a single annotated word handed over by the annotation pipeline.
// Offsets are character positions in the recipe text.
type Token struct {
	Text  string `json:"text" validate:"required"`
	Lemma string `json:"lemma"`
	Begin int    `json:"beginOffset" validate:"gte=0"`
	End   int    `json:"endOffset" validate:"gtefield=Begin"`
}

// NormalizedLemma returns the lowercase lemma, falling back to the text
func (t Token) NormalizedLemma() string {
	if t.Lemma != "" {
		return strings.ToLower(t.Lemma)
	}
	return strings.ToLower(t.Text)
}

// EntityType is the dictionary category of a mention
type EntityType int

const (
	EntityNone EntityType = iota
	EntityIngredient
	EntityUtensil
	EntityAppliance
)

func (e EntityType) String() string {
	switch e {
	case EntityNone:
		return "none"
	case EntityIngredient:
		return "ingredient"
	case EntityUtensil:
		return "utensil"
	case EntityAppliance:
		return "appliance"
	default:
		return fmt.Sprintf("EntityType(%d)", int(e))
	}
}

// ParseEntityType converts a name produced by String back to an EntityType
func ParseEntityType(s string) (EntityType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "other":
		return EntityNone, nil
	case "ingredient", "ingredients":
		return EntityIngredient, nil
	case "utensil", "utensils":
		return EntityUtensil, nil
	case "appliance", "appliances":
		return EntityAppliance, nil
	default:
		return EntityNone, fmt.Errorf("unknown entity type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (e EntityType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *EntityType) UnmarshalText(text []byte) error {
	parsed, err := ParseEntityType(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Role is the semantic role the external classifier assigns to a token
type Role int

const (
	RoleOther Role = iota
	RoleAction
	RoleDirectObject
	RoleIndirectObject
)

func (r Role) String() string {
	switch r {
	case RoleOther:
		return "other"
	case RoleAction:
		return "action"
	case RoleDirectObject:
		return "dobject"
	case RoleIndirectObject:
		return "iobject"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// IsObject reports whether the role marks an object of an action
func (r Role) IsObject() bool {
	switch r {
	case RoleDirectObject, RoleIndirectObject:
		return true
	case RoleAction, RoleOther:
		return false
	default:
		return false
	}
}

// ParseRole converts a role name to a Role
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "other":
		return RoleOther, nil
	case "action":
		return RoleAction, nil
	case "dobject":
		return RoleDirectObject, nil
	case "iobject":
		return RoleIndirectObject, nil
	default:
		return RoleOther, fmt.Errorf("unknown role %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// TaggedWord is a possibly multi-token entity mention
type TaggedWord struct {
	Tokens []Token    `json:"tokens" validate:"required,min=1,dive"`
	Entity EntityType `json:"entity"`
}

// NewTaggedWord builds a mention from its tokens
func NewTaggedWord(entity EntityType, tokens ...Token) TaggedWord {
	return TaggedWord{Tokens: tokens, Entity: entity}
}

// IsTypedEntity reports whether the mention was recognised by the dictionaries
func (w TaggedWord) IsTypedEntity() bool {
	return w.Entity != EntityNone
}

// Lemmas returns the normalized lemma of every token
func (w TaggedWord) Lemmas() []string {
	lemmas := make([]string, len(w.Tokens))
	for i, t := range w.Tokens {
		lemmas[i] = t.NormalizedLemma()
	}
	return lemmas
}

// String joins the surface text of the tokens
func (w TaggedWord) String() string {
	parts := make([]string, len(w.Tokens))
	for i, t := range w.Tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// Span returns the smallest begin and largest end offset of the tokens
func (w TaggedWord) Span() (int, int) {
	if len(w.Tokens) == 0 {
		return 0, 0
	}
	begin, end := w.Tokens[0].Begin, w.Tokens[0].End
	for _, t := range w.Tokens[1:] {
		if t.Begin < begin {
			begin = t.Begin
		}
		if t.End > end {
			end = t.End
		}
	}
	return begin, end
}
