package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBatch_Reproducible(t *testing.T) {
	cfg := batchConfig{Count: 25, Difficulty: 3, MaxDifficulty: 10, Seed: 99, Workers: 1}

	first, failed, err := generateBatch(context.Background(), cfg)
	require.NoError(t, err)
	require.Empty(t, failed)
	require.Len(t, first, 25)

	cfg.Workers = 8
	second, _, err := generateBatch(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateBatch_QuestionShape(t *testing.T) {
	questions, _, err := generateBatch(context.Background(), batchConfig{
		Count: 10, Difficulty: 1, MaxDifficulty: 10, Seed: 7, Workers: 2,
	})
	require.NoError(t, err)

	for i, q := range questions {
		assert.Equal(t, i, q.Index)
		assert.Equal(t, uint64(7+i), q.Seed)
		assert.Equal(t, 260, q.DifficultyRange)
		require.GreaterOrEqual(t, q.CorrectPosition, 1)
		require.LessOrEqual(t, q.CorrectPosition, 9)
		assert.Equal(t, q.Answer.Hex, q.Options[q.CorrectPosition-1])

		c, err := colormodel.FromHex(q.Answer.Hex)
		require.NoError(t, err)
		assert.Equal(t, c.RGBString(), q.Answer.RGB)
		assert.Equal(t, c.HSLString(), q.Answer.HSL)

		assert.LessOrEqual(t, q.Spread.Min, q.Spread.Mean)
		assert.LessOrEqual(t, q.Spread.Mean, q.Spread.Max)
		assert.Greater(t, q.Spread.Min, 0.0)
	}
}

func TestGenerateBatch_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  batchConfig
	}{
		{"zero count", batchConfig{Count: 0, Difficulty: 1, MaxDifficulty: 10}},
		{"difficulty above max", batchConfig{Count: 1, Difficulty: 11, MaxDifficulty: 10}},
		{"difficulty zero", batchConfig{Count: 1, Difficulty: 0, MaxDifficulty: 10}},
		{"max zero", batchConfig{Count: 1, Difficulty: 1, MaxDifficulty: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := generateBatch(context.Background(), tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestGenerateBatch_ProgressOutput(t *testing.T) {
	var buf bytes.Buffer
	_, _, err := generateBatch(context.Background(), batchConfig{
		Count: 4, Difficulty: 5, MaxDifficulty: 10, Seed: 1, Workers: 1, Progress: &buf,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "4/4 questions")
}

func TestWriteQuestions(t *testing.T) {
	questions, _, err := generateBatch(context.Background(), batchConfig{
		Count: 3, Difficulty: 5, MaxDifficulty: 10, Seed: 11, Workers: 1,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeQuestions(&buf, questions))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	for _, key := range []string{"index", "seed", "difficulty_range", "answer", "correct_position", "options", "spread"} {
		assert.Contains(t, decoded[0], key)
	}
}
