package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/domain"
)

func TestWorks(t *testing.T) {
	works := Works()
	require.Len(t, works, 6)

	for _, w := range works {
		assert.NotEmpty(t, w.ID)
		assert.NotEmpty(t, w.Title)
		assert.True(t, w.Category.Valid(), w.Category)
		assert.NotEmpty(t, w.Thumbnail)
	}
	assert.Equal(t, "https://img.youtube.com/vi/Sj60-By_T50/maxresdefault.jpg", works[1].Thumbnail)
	assert.Equal(t, domain.WorkTypeParticipated, works[3].Type)

	works[0].Title = "mutated"
	assert.NotEqual(t, "mutated", Works()[0].Title)
}

func TestSkills(t *testing.T) {
	tools := Skills(domain.SkillTools)
	require.Len(t, tools, 8)
	assert.Equal(t, []string{"Proficient", "Familiar"}, domain.Groups(tools))

	assert.Len(t, Skills(domain.SkillEquipment), 5)
	assert.Len(t, Skills(domain.SkillCapabilities), 6)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := decode([]byte("works: [unterminated"))
	assert.Error(t, err)
}
