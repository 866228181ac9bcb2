package flow

import "fmt"

// NoHead marks a token without a governing token in its sentence
const NoHead = -1

// RoleToken is one mention of a sentence as the role classifier saw it.
// Head is the index within the sentence of the token governing this one in
// the dependency parse, or NoHead.
type RoleToken struct {
	Word TaggedWord `json:"word"`
	Role Role       `json:"role"`
	Head int        `json:"head" validate:"gte=-1"`
}

// Document is the annotation pipeline output for one recipe, optionally
// with the dependency pairs an offline classifier accepted.
type Document struct {
	Title     string        `json:"title"`
	Sentences [][]RoleToken `json:"sentences" validate:"required,min=1,dive,min=1,dive"`
	Pairs     []Pair        `json:"pairs,omitempty" validate:"omitempty,dive"`
}

// Assemble turns role-tagged sentences into actions registered in reg.
//
// Every action token opens a new action whose objects are the typed entities
// it governs. Object tokens left over are attached to the action before
// their position in the sentence, or failing that to the action right after.
// Objects that neither exists for are dropped.
func Assemble(reg *Registry, sentences [][]RoleToken) ([]*Action, error) {
	var actions []*Action

	for s, sentence := range sentences {
		byPosition := make(map[int]*Action)
		indices := make(map[int]*Action)
		processed := make(map[int]bool)

		type candidate struct {
			position int
			index    int
		}
		var candidates []candidate

		for position, tok := range sentence {
			if tok.Head < NoHead || tok.Head >= len(sentence) {
				return nil, fmt.Errorf("sentence %d token %d: head %d out of range", s, position, tok.Head)
			}

			switch tok.Role {
			case RoleDirectObject, RoleIndirectObject:
				candidates = append(candidates, candidate{position: position, index: reg.Next()})
			case RoleAction:
				if len(tok.Word.Tokens) == 0 {
					return nil, fmt.Errorf("sentence %d token %d: action has no tokens", s, position)
				}
				action := reg.NewAction(tok.Word.Tokens[0])
				indices[action.ID] = action
				byPosition[position] = action
				actions = append(actions, action)
			case RoleOther:
			default:
				return nil, fmt.Errorf("sentence %d token %d: unknown role %s", s, position, tok.Role)
			}
		}

		for position, tok := range sentence {
			if tok.Head == NoHead || !tok.Word.IsTypedEntity() {
				continue
			}
			action, ok := byPosition[tok.Head]
			if !ok {
				continue
			}
			role := tok.Role
			if !role.IsObject() {
				role = RoleDirectObject
			}
			if err := action.AddObject(tok.Word, role); err != nil {
				return nil, err
			}
			processed[position] = true
		}

		for _, c := range candidates {
			if processed[c.position] {
				continue
			}
			tok := sentence[c.position]
			target, ok := indices[c.index-1]
			if !ok {
				target, ok = indices[c.index]
			}
			if !ok {
				continue
			}
			if err := target.AddObject(tok.Word, tok.Role); err != nil {
				return nil, err
			}
		}
	}

	return actions, nil
}
