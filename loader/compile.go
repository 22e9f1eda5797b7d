// Package loader loads Lua encounter content into Go structs at load time.
// The Lua VM is discarded after loading; choice effects become Go closures.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/arkfall/engine/effects"
	"github.com/nathoo/arkfall/types"
	lua "github.com/yuin/gopher-lua"
)

// defaultWeight applies when an encounter omits weight.
const defaultWeight = 1.0

// rawEncounter holds an encounter table before compilation.
type rawEncounter struct {
	id    string
	table *lua.LTable
	order int
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or def if missing.
func getNumber(tbl *lua.LTable, key string, def float64) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings returns the string elements of an array field. A plain string
// field is treated as a one-element list.
func getStrings(tbl *lua.LTable, key string) []string {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		var out []string
		for i := 1; i <= v.MaxN(); i++ {
			if s, ok := v.RawGetInt(i).(lua.LString); ok {
				out = append(out, string(s))
			}
		}
		return out
	default:
		return nil
	}
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Check if it's an array (sequential integer keys starting at 1).
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		// Otherwise treat as map.
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// compile converts all collected encounters into per-category tables, in
// source order within each category.
func compile(coll *collector) (Tables, error) {
	if len(coll.encounters) == 0 {
		return nil, fmt.Errorf("no Encounter definitions found")
	}

	raws := append([]rawEncounter(nil), coll.encounters...)
	sort.SliceStable(raws, func(i, j int) bool { return raws[i].order < raws[j].order })

	tables := Tables{}
	for _, raw := range raws {
		cat, entry, err := compileEncounter(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling encounter %s: %w", raw.id, err)
		}
		table := tables[cat]
		table.Category = cat
		table.Entries = append(table.Entries, entry)
		tables[cat] = table
	}
	return tables, nil
}

func compileEncounter(raw rawEncounter) (types.Category, types.EncounterEntry, error) {
	tbl := raw.table
	cat := types.Category(getString(tbl, "category"))
	entry := types.EncounterEntry{
		ID:       raw.id,
		Weight:   getNumber(tbl, "weight", defaultWeight),
		Title:    getString(tbl, "title"),
		Context:  getString(tbl, "context"),
		Dialogue: getStrings(tbl, "dialogue"),
		Names:    getStrings(tbl, "names"),
	}

	if choices := getTable(tbl, "choices"); choices != nil {
		for i := 1; i <= choices.MaxN(); i++ {
			ct, ok := choices.RawGetInt(i).(*lua.LTable)
			if !ok {
				return cat, entry, fmt.Errorf("choice %d is not a table", i)
			}
			entry.Choices = append(entry.Choices, compileChoice(ct))
		}
	}
	return cat, entry, nil
}

func compileChoice(tbl *lua.LTable) types.Choice {
	var effs []types.Effect
	if et := getTable(tbl, "effects"); et != nil {
		effs = compileEffects(et)
	}
	return types.Choice{
		Label:   getString(tbl, "label"),
		Effects: effs,
		Apply:   effects.Compile(effs),
	}
}

func compileEffects(tbl *lua.LTable) []types.Effect {
	var out []types.Effect
	for i := 1; i <= tbl.MaxN(); i++ {
		if effTbl, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			out = append(out, compileEffect(effTbl))
		}
	}
	return out
}

func compileEffect(tbl *lua.LTable) types.Effect {
	effType := getString(tbl, "type")
	params := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok || ks == "type" {
			return
		}
		key := string(ks)
		// Branches of a chance effect are effect lists themselves.
		if effType == effects.TypeChance && (key == "then" || key == "else") {
			if branch, ok := v.(*lua.LTable); ok {
				params[key] = compileEffects(branch)
			}
			return
		}
		params[key] = toGoValue(v)
	})
	return types.Effect{
		Type:   effType,
		Params: params,
	}
}
