// Package effects applies compiled content effects through the
// types.EffectContext surface. Every effect type is one atomic operation;
// the engine behind the context enforces bounds.
package effects

import (
	"strings"

	"github.com/nathoo/arkfall/types"
)

// Effect types understood by Apply.
const (
	TypeSay        = "say"
	TypeEnergy     = "energy"
	TypeSalvage    = "salvage"
	TypeRations    = "rations"
	TypeKnowledge  = "knowledge"
	TypeStress     = "stress"
	TypeInjure     = "injure"
	TypeKill       = "kill"
	TypeHeal       = "heal"
	TypeTag        = "tag"
	TypeDamageDeck = "damage_deck"
	TypeUpgrade    = "upgrade"
	TypeChance     = "chance"
	TypeStop       = "stop"
)

// Known reports whether t is an effect type Apply understands.
func Known(t string) bool {
	switch t {
	case TypeSay, TypeEnergy, TypeSalvage, TypeRations, TypeKnowledge,
		TypeStress, TypeInjure, TypeKill, TypeHeal, TypeTag,
		TypeDamageDeck, TypeUpgrade, TypeChance, TypeStop:
		return true
	}
	return false
}

// Compile wraps an effect list as a choice effect.
func Compile(effs []types.Effect) types.ChoiceEffect {
	return func(ctx types.EffectContext) string {
		return Apply(ctx, effs)
	}
}

// Apply runs effs in order against ctx and returns the narration spoken by
// say effects, joined by spaces.
func Apply(ctx types.EffectContext, effs []types.Effect) string {
	var said []string
	apply(ctx, effs, &said)
	return strings.Join(said, " ")
}

// apply returns false when a stop effect was reached.
func apply(ctx types.EffectContext, effs []types.Effect, said *[]string) bool {
	for _, eff := range effs {
		switch eff.Type {
		case TypeSay:
			text, _ := eff.Params["text"].(string)
			*said = append(*said, text)

		case TypeEnergy:
			ctx.AdjustEnergy(toInt(eff.Params["amount"]))

		case TypeSalvage:
			ctx.AdjustSalvage(toInt(eff.Params["amount"]))

		case TypeRations:
			ctx.AdjustRations(toInt(eff.Params["amount"]))

		case TypeKnowledge:
			ctx.AddKnowledge(toInt(eff.Params["amount"]))

		case TypeStress:
			ctx.AdjustStress(target(eff), toInt(eff.Params["amount"]))

		case TypeInjure:
			ctx.Injure(target(eff))

		case TypeKill:
			ctx.Kill(target(eff))

		case TypeHeal:
			ctx.Heal(target(eff))

		case TypeTag:
			name, _ := eff.Params["tag"].(string)
			if tag, ok := types.TagByName(name); ok {
				ctx.TagCrew(target(eff), tag)
			}

		case TypeDamageDeck:
			ctx.DamageDeck()

		case TypeUpgrade:
			id, _ := eff.Params["id"].(string)
			if ctx.InstallUpgrade(id) {
				if limit := toInt(eff.Params["salvage_cap"]); limit > 0 {
					ctx.RaiseSalvageCap(limit)
				}
			}

		case TypeChance:
			branch := toEffects(eff.Params["else"])
			if ctx.Roll(100) <= toInt(eff.Params["percent"]) {
				branch = toEffects(eff.Params["then"])
			}
			if !apply(ctx, branch, said) {
				return false
			}

		case TypeStop:
			return false

		default:
			// Unknown effect types are ignored.
		}
	}
	return true
}

func target(eff types.Effect) string {
	if t, ok := eff.Params["target"].(string); ok && t != "" {
		return t
	}
	return "random"
}

func toEffects(v any) []types.Effect {
	effs, _ := v.([]types.Effect)
	return effs
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
