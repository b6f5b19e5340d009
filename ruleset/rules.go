package ruleset

import "unicode"

// ruleApplies evaluates rule as the context of the record occupying
// label[at:at+n]. Items before the anchor must match immediately behind
// the record, items after it immediately ahead; a leading start item pins
// the look-behind to the label start and a trailing end item pins the
// look-ahead to the label end. A rule without an anchor must match the
// whole label.
func (l *LGR) ruleApplies(rule *Rule, label []rune, at, n int) bool {
	anchor := -1
	for i, it := range rule.Items {
		if it.Kind == ItemAnchor {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return l.wholeLabelMatch(rule, label)
	}
	pre := rule.Items[:anchor]
	post := rule.Items[anchor+1:]

	mustStart := len(pre) > 0 && pre[0].Kind == ItemStart
	if mustStart {
		pre = pre[1:]
	}
	w, ok := itemsWidth(pre)
	if !ok {
		return false
	}
	from := at - w
	if from < 0 || (mustStart && from != 0) {
		return false
	}
	if end, ok := l.matchItems(pre, label, from); !ok || end != at {
		return false
	}

	mustEnd := len(post) > 0 && post[len(post)-1].Kind == ItemEnd
	if mustEnd {
		post = post[:len(post)-1]
	}
	end, ok := l.matchItems(post, label, at+n)
	if !ok {
		return false
	}
	return !mustEnd || end == len(label)
}

// wholeLabelMatch reports whether rule covers label in its entirety, the
// evaluation used for action match conditions.
func (l *LGR) wholeLabelMatch(rule *Rule, label []rune) bool {
	items := rule.Items
	if len(items) > 0 && items[0].Kind == ItemStart {
		items = items[1:]
	}
	if len(items) > 0 && items[len(items)-1].Kind == ItemEnd {
		items = items[:len(items)-1]
	}
	w, ok := itemsWidth(items)
	if !ok || w != len(label) {
		return false
	}
	end, ok := l.matchItems(items, label, 0)
	return ok && end == len(label)
}

// itemsWidth sums the code point width of concrete items. It reports
// failure when a positional operator appears where only concrete items
// belong.
func itemsWidth(items []RuleItem) (int, bool) {
	w := 0
	for _, it := range items {
		switch it.Kind {
		case ItemAny, ItemClass:
			w++
		case ItemLiteral:
			w += len(it.Literal)
		default:
			return 0, false
		}
	}
	return w, true
}

// matchItems matches concrete items against label from pos, returning the
// position after the match.
func (l *LGR) matchItems(items []RuleItem, label []rune, pos int) (int, bool) {
	for _, it := range items {
		switch it.Kind {
		case ItemAny:
			if pos >= len(label) {
				return 0, false
			}
			pos++
		case ItemClass:
			if pos >= len(label) {
				return 0, false
			}
			t := l.classTable(it.Class)
			if t == nil || !unicode.Is(t, label[pos]) {
				return 0, false
			}
			pos++
		case ItemLiteral:
			for _, cp := range it.Literal {
				if pos >= len(label) || label[pos] != cp {
					return 0, false
				}
				pos++
			}
		default:
			return 0, false
		}
	}
	return pos, true
}

// actionTriggers reports whether every condition present on the action
// holds for the label.
func (l *LGR) actionTriggers(a *Action, label []rune, variantTypes map[string]bool) bool {
	if a.Match != "" {
		rule := l.rules[a.Match]
		if rule == nil || !l.wholeLabelMatch(rule, label) {
			return false
		}
	}
	if a.NotMatch != "" {
		rule := l.rules[a.NotMatch]
		if rule == nil || l.wholeLabelMatch(rule, label) {
			return false
		}
	}
	if len(a.AnyVariant) > 0 {
		hit := false
		for _, t := range a.AnyVariant {
			if variantTypes[t] {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for _, t := range a.AllVariants {
		if !variantTypes[t] {
			return false
		}
	}
	return true
}
