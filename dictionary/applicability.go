package dictionary

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// MaxKanjiPositions is the width of the "app" bitfield.
const MaxKanjiPositions = 16

type applicabilityKind int

const (
	appliesToAll applicabilityKind = iota
	appliesToNone
	appliesToIndices
)

// Applicability says which kanji spellings of a dictionary line a reading
// belongs to: all of them, none of them (the reading stands on its own) or
// the spellings at a set of positions.
type Applicability struct {
	kind    applicabilityKind
	indices *treeset.Set
}

var (
	AppliesToAll  = Applicability{kind: appliesToAll}
	AppliesToNone = Applicability{kind: appliesToNone}
)

// AppliesToIndices builds an index set. An empty set means the reading is
// tied to no spelling, which is AppliesToNone.
func AppliesToIndices(indices ...int) Applicability {
	if len(indices) == 0 {
		return AppliesToNone
	}
	set := treeset.NewWithIntComparator()
	for _, i := range indices {
		set.Add(i)
	}
	return Applicability{kind: appliesToIndices, indices: set}
}

// ParseApplicability decodes the "app" field: absent applies to all
// spellings, 0 to none, anything else is a bitfield where bit n selects the
// spelling at position n.
func ParseApplicability(app *int) Applicability {
	if app == nil {
		return AppliesToAll
	}
	if *app == 0 {
		return AppliesToNone
	}
	var indices []int
	for n := 0; n < MaxKanjiPositions; n++ {
		if *app&(1<<n) != 0 {
			indices = append(indices, n)
		}
	}
	return AppliesToIndices(indices...)
}

func (a Applicability) IsAll() bool {
	return a.kind == appliesToAll
}

func (a Applicability) IsNone() bool {
	return a.kind == appliesToNone
}

// Includes reports whether the spelling at position i is covered.
func (a Applicability) Includes(i int) bool {
	switch a.kind {
	case appliesToAll:
		return true
	case appliesToIndices:
		return a.indices.Contains(i)
	}
	return false
}

// Indices lists the selected positions in ascending order; nil unless the
// applicability is an index set.
func (a Applicability) Indices() []int {
	if a.kind != appliesToIndices {
		return nil
	}
	ret := make([]int, 0, a.indices.Size())
	for _, v := range a.indices.Values() {
		ret = append(ret, v.(int))
	}
	return ret
}

func (a Applicability) String() string {
	switch a.kind {
	case appliesToAll:
		return "all"
	case appliesToNone:
		return "none"
	}
	strs := make([]string, 0, a.indices.Size())
	for _, i := range a.Indices() {
		strs = append(strs, fmt.Sprint(i))
	}
	return "{" + strings.Join(strs, ",") + "}"
}
