package main

import (
	"bytes"
	"testing"

	assignmentstore "github.com/dalemusser/officehub/internal/app/store/assignments"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

func TestRenderStages_Table(t *testing.T) {
	var buf bytes.Buffer
	counts := map[string]int64{
		models.StageCareerEnquiry: 4,
		models.StageSelected:      2,
		"archived":                1,
	}
	require.NoError(t, renderStages(&buf, "table", counts))

	out := buf.String()
	assert.Contains(t, out, "Candidates by Stage")
	assert.Contains(t, out, "Career Enquiry")
	assert.Contains(t, out, "Joining Data")
	assert.Contains(t, out, "archived")
	assert.Contains(t, out, "7")
}

func TestRenderStages_YAMLOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderStages(&buf, "yaml", map[string]int64{models.StageRejected: 3}))

	var rows []stageRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, len(models.CandidateStages))
	for i, st := range models.CandidateStages {
		assert.Equal(t, st, rows[i].Stage)
	}
	assert.Equal(t, int64(3), rows[len(rows)-1].Count)
	assert.Equal(t, int64(0), rows[0].Count)
}

func TestRenderLoad(t *testing.T) {
	id := primitive.NewObjectID()
	load := []assignmentstore.RMLoad{{RMID: id, RMName: "Ravi Kumar", Prospects: 5}}

	var buf bytes.Buffer
	require.NoError(t, renderLoad(&buf, "table", load))
	assert.Contains(t, buf.String(), "Ravi Kumar")
	assert.Contains(t, buf.String(), id.Hex())

	buf.Reset()
	require.NoError(t, renderLoad(&buf, "table", nil))
	assert.Contains(t, buf.String(), "No prospects are assigned.")

	buf.Reset()
	require.NoError(t, renderLoad(&buf, "yaml", load))
	assert.Contains(t, buf.String(), "rm_name: Ravi Kumar")
	assert.Contains(t, buf.String(), "prospects: 5")
}

func TestRenderTop(t *testing.T) {
	top := []models.Candidate{
		{ID: primitive.NewObjectID(), FullName: "Asha Rao", CurrentStage: models.StageSelected, TotalMarks: 18},
		{ID: primitive.NewObjectID(), FullName: "Vikram Das", CurrentStage: models.StageCareerEnquiry, TotalMarks: 11},
	}

	var buf bytes.Buffer
	require.NoError(t, renderTop(&buf, "yaml", top))
	var rows []topRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "Asha Rao", rows[0].Name)
	assert.Equal(t, "Selected", rows[0].Stage)
	assert.Equal(t, 11, rows[1].TotalMarks)

	buf.Reset()
	require.NoError(t, renderTop(&buf, "table", top))
	assert.Contains(t, buf.String(), "Top 2 Candidates")
	assert.Contains(t, buf.String(), "Vikram Das")
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, renderStages(&buf, "json", nil))
	assert.Error(t, renderLoad(&buf, "csv", nil))
	assert.Error(t, renderTop(&buf, "", nil))
	assert.Zero(t, buf.Len())
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"indexes"},
		{"rescore"},
		{"report", "stages"},
		{"report", "rm-load"},
		{"report", "top"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
	assert.NotNil(t, rescoreCmd.Flags().Lookup("dry-run"))
	assert.NotNil(t, reportTopCmd.Flags().Lookup("limit"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("mongo-uri"))
}
