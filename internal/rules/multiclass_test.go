package rules_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
	"github.com/tavernkeep/character-api/internal/rules"
)

type MulticlassTestSuite struct {
	suite.Suite
}

func TestMulticlassSuite(t *testing.T) {
	suite.Run(t, new(MulticlassTestSuite))
}

func (s *MulticlassTestSuite) TestTotalLevel() {
	testCases := []struct {
		name     string
		classes  []dnd5e.ClassLevel
		expected int32
	}{
		{
			name:     "single class",
			classes:  []dnd5e.ClassLevel{{Class: dnd5e.ClassWizard, Level: 7}},
			expected: 7,
		},
		{
			name: "fighter rogue multiclass",
			classes: []dnd5e.ClassLevel{
				{Class: dnd5e.ClassFighter, Level: 3},
				{Class: dnd5e.ClassRogue, Level: 2},
			},
			expected: 5,
		},
		{
			name: "three classes",
			classes: []dnd5e.ClassLevel{
				{Class: dnd5e.ClassPaladin, Level: 6},
				{Class: dnd5e.ClassWarlock, Level: 5},
				{Class: dnd5e.ClassSorcerer, Level: 9},
			},
			expected: 20,
		},
		{
			name:     "empty list",
			classes:  nil,
			expected: 0,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, rules.TotalLevel(tc.classes))
		})
	}
}

func (s *MulticlassTestSuite) TestTotalLevelResolvesProficiencyBonus() {
	classes := []dnd5e.ClassLevel{
		{Class: dnd5e.ClassFighter, Level: 3},
		{Class: dnd5e.ClassRogue, Level: 2},
	}

	total := rules.TotalLevel(classes)
	s.Equal(int32(5), total)
	s.Equal(int32(3), rules.ProficiencyBonusForLevel(total))
}

func (s *MulticlassTestSuite) TestClassLevelMap() {
	classes := []dnd5e.ClassLevel{
		{Class: dnd5e.ClassFighter, Level: 3},
		{Class: dnd5e.ClassRogue, Level: 2},
	}

	m := rules.ClassLevelMap(classes)
	s.Len(m, 2)
	s.Equal(int32(3), m[dnd5e.ClassFighter])
	s.Equal(int32(2), m[dnd5e.ClassRogue])
}

func (s *MulticlassTestSuite) TestClassLevelMapDuplicateTakesLastEntry() {
	// The form prevents duplicates; the reducer tolerates them with
	// last-write-wins rather than rejecting
	classes := []dnd5e.ClassLevel{
		{Class: dnd5e.ClassFighter, Level: 3},
		{Class: dnd5e.ClassFighter, Level: 5},
	}

	m := rules.ClassLevelMap(classes)
	s.Len(m, 1)
	s.Equal(int32(5), m[dnd5e.ClassFighter])
}
