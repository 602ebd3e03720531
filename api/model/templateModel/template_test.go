package templatemodel

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/certgen-api/test/helpers"
)

func TestTemplateRepository_GetVisible(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := NewTemplateRepository(db)

	owner := uuid.NewString()
	shared := helpers.SeedTemplate(t, db, nil)
	owned := helpers.SeedTemplate(t, db, &owner)

	tests := []struct {
		name       string
		templateId string
		userId     string
		wantFound  bool
	}{
		{name: "Shared template visible to anyone", templateId: shared.ID, userId: uuid.NewString(), wantFound: true},
		{name: "Shared template visible with non-uuid caller", templateId: shared.ID, userId: "admin", wantFound: true},
		{name: "Owned template visible to owner", templateId: owned.ID, userId: owner, wantFound: true},
		{name: "Owned template hidden from others", templateId: owned.ID, userId: uuid.NewString()},
		{name: "Unknown template", templateId: uuid.NewString(), userId: owner},
		{name: "Malformed template id", templateId: "abc", userId: owner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := repo.GetVisible(tt.templateId, tt.userId)
			require.NoError(t, err)
			if !tt.wantFound {
				assert.Nil(t, tmpl)
				return
			}
			require.NotNil(t, tmpl)
			assert.Equal(t, tt.templateId, tmpl.ID)
		})
	}

	t.Run("Fields are ordered by sort order", func(t *testing.T) {
		tmpl, err := repo.GetVisible(shared.ID, owner)
		require.NoError(t, err)
		require.Len(t, tmpl.Fields, 3)

		labels := []string{tmpl.Fields[0].Label, tmpl.Fields[1].Label, tmpl.Fields[2].Label}
		assert.Equal(t, []string{"Name", "Course", "Certificate No."}, labels)
	})
}
