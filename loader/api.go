package loader

import (
	"github.com/nathoo/arkfall/engine/effects"
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Encounter "id" { ... } is curried: Encounter("id") returns a function that takes a table.
	L.SetGlobal("Encounter", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.encounters = append(coll.encounters, rawEncounter{
				id:    id,
				table: tbl,
				order: coll.nextSourceOrder(),
			})
			return 0
		}))
		return 1
	}))

	// Choice("label", { effects... }) is sugar for { label = ..., effects = {...} }.
	L.SetGlobal("Choice", L.NewFunction(func(L *lua.LState) int {
		label := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("label", lua.LString(label))
		if effs, ok := L.Get(2).(*lua.LTable); ok {
			tbl.RawSetString("effects", effs)
		}
		L.Push(tbl)
		return 1
	}))
}

// effectTable builds the table form of an effect.
func effectTable(L *lua.LState, typ string) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("type", lua.LString(typ))
	return tbl
}

// amountHelper registers Name(n) for an effect carrying an amount.
func amountHelper(L *lua.LState, name, typ string) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		amount := L.CheckNumber(1)
		tbl := effectTable(L, typ)
		tbl.RawSetString("amount", amount)
		L.Push(tbl)
		return 1
	}))
}

// targetHelper registers Name(target?) for an effect aimed at crew.
func targetHelper(L *lua.LState, name, typ string) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		tbl := effectTable(L, typ)
		if target := L.OptString(1, ""); target != "" {
			tbl.RawSetString("target", lua.LString(target))
		}
		L.Push(tbl)
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	// Say("text")
	L.SetGlobal("Say", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		tbl := effectTable(L, effects.TypeSay)
		tbl.RawSetString("text", lua.LString(text))
		L.Push(tbl)
		return 1
	}))

	// Energy(n), Salvage(n), Rations(n), Knowledge(n)
	amountHelper(L, "Energy", effects.TypeEnergy)
	amountHelper(L, "Salvage", effects.TypeSalvage)
	amountHelper(L, "Rations", effects.TypeRations)
	amountHelper(L, "Knowledge", effects.TypeKnowledge)

	// Stress(n, target?)
	L.SetGlobal("Stress", L.NewFunction(func(L *lua.LState) int {
		amount := L.CheckNumber(1)
		tbl := effectTable(L, effects.TypeStress)
		tbl.RawSetString("amount", amount)
		if target := L.OptString(2, ""); target != "" {
			tbl.RawSetString("target", lua.LString(target))
		}
		L.Push(tbl)
		return 1
	}))

	// Injure(target?), Kill(target?), Heal(target?)
	targetHelper(L, "Injure", effects.TypeInjure)
	targetHelper(L, "Kill", effects.TypeKill)
	targetHelper(L, "Heal", effects.TypeHeal)

	// Tag("HIVE_MIND", target?)
	L.SetGlobal("Tag", L.NewFunction(func(L *lua.LState) int {
		tag := L.CheckString(1)
		tbl := effectTable(L, effects.TypeTag)
		tbl.RawSetString("tag", lua.LString(tag))
		if target := L.OptString(2, ""); target != "" {
			tbl.RawSetString("target", lua.LString(target))
		}
		L.Push(tbl)
		return 1
	}))

	// DamageDeck()
	L.SetGlobal("DamageDeck", L.NewFunction(func(L *lua.LState) int {
		L.Push(effectTable(L, effects.TypeDamageDeck))
		return 1
	}))

	// Upgrade("id", salvageCap?)
	L.SetGlobal("Upgrade", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		tbl := effectTable(L, effects.TypeUpgrade)
		tbl.RawSetString("id", lua.LString(id))
		if limit := L.OptNumber(2, 0); limit > 0 {
			tbl.RawSetString("salvage_cap", limit)
		}
		L.Push(tbl)
		return 1
	}))

	// Chance(percent, { then... }, { else... }?)
	L.SetGlobal("Chance", L.NewFunction(func(L *lua.LState) int {
		percent := L.CheckNumber(1)
		then := L.CheckTable(2)
		tbl := effectTable(L, effects.TypeChance)
		tbl.RawSetString("percent", percent)
		tbl.RawSetString("then", then)
		if otherwise, ok := L.Get(3).(*lua.LTable); ok {
			tbl.RawSetString("else", otherwise)
		}
		L.Push(tbl)
		return 1
	}))

	// Stop()
	L.SetGlobal("Stop", L.NewFunction(func(L *lua.LState) int {
		L.Push(effectTable(L, effects.TypeStop))
		return 1
	}))
}
