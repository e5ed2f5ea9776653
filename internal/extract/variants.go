package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/twlint/internal/occurrence"
	"github.com/yacobolo/twlint/internal/syntax"
)

type dsl int

const (
	dslNone dsl = iota
	dslCVA
	dslTV
)

// variantDSL reports which variant DSL, if any, call invokes.
func (s *Session) variantDSL(call *sitter.Node) dsl {
	if call == nil || call.Type() != syntax.NodeCall {
		return dslNone
	}
	if !s.cfg.DisableCVA && s.matchesFunction(call, s.cfg.CVAFunctions) {
		return dslCVA
	}
	if !s.cfg.DisableTV && s.matchesFunction(call, s.cfg.TVFunctions) {
		return dslTV
	}
	return dslNone
}

// extractVariantCall harvests a cva(...) or tv(...) call. Base classes are
// root occurrences of the call scope; option classes are variant
// occurrences tagged with their option so sibling options never compare.
func (s *Session) extractVariantCall(call *sitter.Node) []occurrence.ClassOccurrence {
	kind := s.variantDSL(call)
	if kind == dslNone {
		return nil
	}

	scope := "cva:" + syntax.NodeID(call)
	args := syntax.Arguments(call)
	if len(args) == 0 {
		return nil
	}

	first := syntax.Unwrap(args[0])
	if first != nil && first.Type() == syntax.NodeObject {
		return s.variantConfig(first, scope)
	}
	if kind == dslTV {
		return nil
	}

	occs := s.Resolve(args[0], scope, occurrence.Root)
	if len(args) > 1 {
		if cfg := syntax.Unwrap(args[1]); cfg != nil && cfg.Type() == syntax.NodeObject {
			occs = append(occs, s.variantConfig(cfg, scope)...)
		}
	}
	return occs
}

// variantConfig walks { base, slots, variants, compoundVariants, compoundSlots }.
func (s *Session) variantConfig(obj *sitter.Node, scope string) []occurrence.ClassOccurrence {
	var occs []occurrence.ClassOccurrence
	slots := map[string]string{"base": scope}

	if _, base := s.file.Property(obj, "base"); base != nil {
		occs = append(occs, s.Resolve(base, scope, occurrence.Root)...)
	}

	if _, value := s.file.Property(obj, "slots"); value != nil {
		if slotsObj := syntax.Unwrap(value); slotsObj != nil && slotsObj.Type() == syntax.NodeObject {
			for _, pair := range pairs(slotsObj) {
				name, ok := s.file.PropertyKey(pair.ChildByFieldName("key"))
				if !ok {
					continue
				}
				slotScope := slotScopeID(scope, name)
				slots[name] = slotScope
				occs = append(occs, s.slotValue(pair.ChildByFieldName("value"), slotScope)...)
			}
		}
	}

	if _, value := s.file.Property(obj, "variants"); value != nil {
		if variants := syntax.Unwrap(value); variants != nil && variants.Type() == syntax.NodeObject {
			for _, variant := range pairs(variants) {
				options := syntax.Unwrap(variant.ChildByFieldName("value"))
				if options == nil || options.Type() != syntax.NodeObject {
					continue
				}
				id := syntax.NodeID(variant)
				for _, option := range pairs(options) {
					name, ok := s.file.PropertyKey(option.ChildByFieldName("key"))
					if !ok {
						continue
					}
					branch := occurrence.Variant(id, name)
					occs = append(occs, s.optionValue(option.ChildByFieldName("value"), scope, slots, branch)...)
				}
			}
		}
	}

	if _, value := s.file.Property(obj, "compoundVariants"); value != nil {
		occs = append(occs, s.compoundVariants(syntax.Unwrap(value), scope, slots)...)
	}
	if _, value := s.file.Property(obj, "compoundSlots"); value != nil {
		occs = append(occs, s.compoundSlots(syntax.Unwrap(value), scope, slots)...)
	}

	return occs
}

// slotValue resolves a slot's base classes. A nested object of the same
// shape as a variant config is walked as one.
func (s *Session) slotValue(value *sitter.Node, slotScope string) []occurrence.ClassOccurrence {
	inner := syntax.Unwrap(value)
	if inner != nil && inner.Type() == syntax.NodeObject && s.isVariantConfig(inner) {
		return s.variantConfig(inner, slotScope)
	}
	return s.Resolve(value, slotScope, occurrence.Root)
}

func (s *Session) isVariantConfig(obj *sitter.Node) bool {
	for _, key := range []string{"base", "variants", "slots", "compoundVariants"} {
		if pair, _ := s.file.Property(obj, key); pair != nil {
			return true
		}
	}
	return false
}

// optionValue resolves one variant option. Objects keyed by known slot
// names route each value to that slot's scope. null/undefined options
// carry no classes.
func (s *Session) optionValue(value *sitter.Node, scope string, slots map[string]string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	inner := syntax.Unwrap(value)
	if inner == nil {
		return nil
	}
	switch inner.Type() {
	case syntax.NodeNull, syntax.NodeUndefined, syntax.NodeTrue, syntax.NodeFalse:
		return nil
	case syntax.NodeObject:
		if s.slotKeyed(inner, slots) {
			var occs []occurrence.ClassOccurrence
			for _, pair := range pairs(inner) {
				name, _ := s.file.PropertyKey(pair.ChildByFieldName("key"))
				occs = append(occs, s.Resolve(pair.ChildByFieldName("value"), slots[name], branch)...)
			}
			return markVariant(occs)
		}
	}
	return markVariant(s.Resolve(value, scope, branch))
}

// slotKeyed reports whether every key of obj names a known slot.
func (s *Session) slotKeyed(obj *sitter.Node, slots map[string]string) bool {
	ps := pairs(obj)
	if len(ps) == 0 {
		return false
	}
	for _, pair := range ps {
		name, ok := s.file.PropertyKey(pair.ChildByFieldName("key"))
		if !ok {
			return false
		}
		if _, known := slots[name]; !known {
			return false
		}
	}
	return true
}

// compoundVariants resolves [{ ...conditions, class }] entries. Each entry
// is its own branch: entries apply independently of one another.
func (s *Session) compoundVariants(list *sitter.Node, scope string, slots map[string]string) []occurrence.ClassOccurrence {
	if list == nil || list.Type() != syntax.NodeArray {
		return nil
	}
	id := syntax.NodeID(list)
	var occs []occurrence.ClassOccurrence
	for i, entry := range syntax.NamedChildren(list) {
		entry = syntax.Unwrap(entry)
		if entry == nil || entry.Type() != syntax.NodeObject {
			continue
		}
		branch := occurrence.Compound(id, i)
		for _, key := range []string{"class", "className"} {
			if _, value := s.file.Property(entry, key); value != nil {
				occs = append(occs, s.optionValue(value, scope, slots, branch)...)
			}
		}
	}
	return occs
}

// compoundSlots resolves [{ slots: [...], class }] entries against each
// named slot.
func (s *Session) compoundSlots(list *sitter.Node, scope string, slots map[string]string) []occurrence.ClassOccurrence {
	if list == nil || list.Type() != syntax.NodeArray {
		return nil
	}
	id := syntax.NodeID(list)
	var occs []occurrence.ClassOccurrence
	for i, entry := range syntax.NamedChildren(list) {
		entry = syntax.Unwrap(entry)
		if entry == nil || entry.Type() != syntax.NodeObject {
			continue
		}
		_, targets := s.file.Property(entry, "slots")
		targets = syntax.Unwrap(targets)
		if targets == nil || targets.Type() != syntax.NodeArray {
			continue
		}
		branch := occurrence.Compound(id, i)
		for _, target := range syntax.NamedChildren(targets) {
			name, _, ok := s.file.StringBody(target)
			if !ok {
				continue
			}
			slotScope, known := slots[name]
			if !known {
				slotScope = slotScopeID(scope, name)
			}
			for _, key := range []string{"class", "className"} {
				if _, value := s.file.Property(entry, key); value != nil {
					occs = append(occs, markVariant(s.Resolve(value, slotScope, branch))...)
				}
			}
		}
	}
	return occs
}

// extractInstanceCall harvests class/className overrides passed to a
// callable produced by a variant DSL, e.g. button({ class: "mt-2" }).
func (s *Session) extractInstanceCall(call *sitter.Node) []occurrence.ClassOccurrence {
	callee := syntax.Unwrap(call.ChildByFieldName("function"))
	if callee == nil || callee.Type() != syntax.NodeIdentifier || !s.isFactory(callee) {
		return nil
	}

	scope := "instance:" + syntax.NodeID(call)
	var occs []occurrence.ClassOccurrence
	for _, arg := range syntax.Arguments(call) {
		obj := syntax.Unwrap(arg)
		if obj == nil || obj.Type() != syntax.NodeObject {
			continue
		}
		for _, key := range []string{"class", "className"} {
			if _, value := s.file.Property(obj, key); value != nil {
				occs = append(occs, s.Resolve(value, scope, occurrence.Root)...)
			}
		}
	}
	return occs
}

// isFactory reports whether ident is bound to the result of a variant DSL
// call. Answers are cached per declaration for the session.
func (s *Session) isFactory(ident *sitter.Node) bool {
	for _, decl := range s.symbols.Declarations(ident) {
		key := syntax.NodeID(decl.Node)
		factory, seen := s.factories[key]
		if !seen {
			factory = decl.Kind == syntax.DeclVariable && s.variantDSL(syntax.Unwrap(decl.Init)) != dslNone
			s.factories[key] = factory
		}
		if factory {
			return true
		}
	}
	return false
}

func slotScopeID(scope, slot string) string {
	if slot == "base" {
		return scope
	}
	return scope + "#slot:" + slot
}

// pairs returns the key/value pairs of an object literal.
func pairs(obj *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range syntax.NamedChildren(obj) {
		if child.Type() == syntax.NodePair {
			out = append(out, child)
		}
	}
	return out
}
