package catalogs

import (
	"strings"

	"golang.org/x/text/cases"
)

var kidsKeywords = []string{
	"童鞋", "小童", "大童", "儿童", "婴", "学步鞋",
	"kids", "child", "children", "baby", "youth",
}

// IsLikelyKids reports whether a title most likely describes children's footwear.
func IsLikelyKids(title string) bool {
	folded := cases.Fold().String(title)
	for _, kw := range kidsKeywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}
