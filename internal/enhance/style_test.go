package enhance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStrongVerb(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"Strong verb - built", "built a system", true},
		{"Strong verb - led", "led a team of four", true},
		{"Past tense ed", "automated deploys", true},
		{"Trailing punctuation", "shipped, then iterated", true},
		{"Weak start - I", "i worked on", false},
		{"Weak start - responsible", "responsible for billing", false},
		{"Short ed word", "bed", false},
		{"Empty text", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, checkStrongVerb(tt.text))
		})
	}
}

func TestCheckQuantifiedImpact(t *testing.T) {
	assert.True(t, checkQuantifiedImpact("Cut latency by 40%"))
	assert.True(t, checkQuantifiedImpact("Handled 1M requests"))
	assert.False(t, checkQuantifiedImpact("Built a great system"))
	assert.False(t, checkQuantifiedImpact(""))
}

func TestCheckTargetLength(t *testing.T) {
	tests := []struct {
		name      string
		rewritten int
		original  int
		expected  bool
	}{
		{"same length", 100, 100, true},
		{"slightly shorter", 85, 100, true},
		{"too short", 50, 100, false},
		{"longer within bound", 170, 100, true},
		{"far too long", 200, 100, false},
		{"empty original", 10, 0, true},
		{"both empty", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, checkTargetLength(tt.rewritten, tt.original))
		})
	}
}

func TestCheckStyle(t *testing.T) {
	t.Run("other field types are not checked", func(t *testing.T) {
		assert.Nil(t, CheckStyle(FieldSummary, "a", "b"))
		assert.Nil(t, CheckStyle(FieldSkills, "a", "b"))
		assert.Nil(t, CheckStyle(FieldTitle, "a", "b"))
	})

	t.Run("description", func(t *testing.T) {
		checks := CheckStyle(FieldDescription, "Was responsible for the billing API.", "Led the billing API serving 2M users.")
		require.NotNil(t, checks)
		assert.Equal(t, StyleChecks{StrongVerb: true, Quantified: true, NoFiller: true, TargetLength: true}, *checks)
	})

	t.Run("achievements need every bullet to open with a verb", func(t *testing.T) {
		checks := CheckStyle(FieldAchievements, "Built APIs\nFixed bugs", "• Built APIs\n• The team fixed bugs")
		require.NotNil(t, checks)
		assert.False(t, checks.StrongVerb)

		checks = CheckStyle(FieldAchievements, "Built APIs\nFixed bugs", "• Built APIs\n• Resolved bugs")
		assert.True(t, checks.StrongVerb)
	})

	t.Run("filler", func(t *testing.T) {
		checks := CheckStyle(FieldDescription, "x", "Team player who worked on payments")
		assert.False(t, checks.NoFiller)
	})
}

func TestEnhance_StyleChecks(t *testing.T) {
	client := echoClient("• Designed the billing API\n• Reduced incidents by 30%")
	resp, err := New(client).Enhance(context.Background(), Request{
		FieldType: FieldAchievements,
		Content:   "worked on billing api\nfixed incidents",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.StyleChecks)
	assert.True(t, resp.StyleChecks.StrongVerb)
	assert.True(t, resp.StyleChecks.Quantified)
	assert.True(t, resp.StyleChecks.NoFiller)

	resp, err = New(echoClient("Seasoned engineer.")).Enhance(context.Background(), Request{FieldType: FieldSummary, Content: "x"})
	require.NoError(t, err)
	assert.Nil(t, resp.StyleChecks)
}
