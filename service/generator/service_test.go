package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/gridlock/model/resource"
	"github.com/viant/gridlock/service/dao/catalog"
)

func TestService_Generate_Capacity(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		number   int
		expected resource.Amounts
	}{
		{
			name:   "level 1 scales by 1.1",
			number: 1,
			expected: resource.Amounts{
				resource.KindCPU:     4,
				resource.KindMemory:  4,
				resource.KindDisk:    3,
				resource.KindPrinter: 2,
			},
		},
		{
			name:   "level 3 scales by 0.9",
			number: 3,
			expected: resource.Amounts{
				resource.KindCPU:     3,
				resource.KindMemory:  3,
				resource.KindDisk:    2,
				resource.KindPrinter: 2,
			},
		},
		{
			name:   "level 8 clamps to 0.7 and min capacity",
			number: 8,
			expected: resource.Amounts{
				resource.KindCPU:     2,
				resource.KindMemory:  2,
				resource.KindDisk:    2,
				resource.KindPrinter: 2,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level, err := New(WithSeed(1)).Generate(ctx, tc.number)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level.Pool.Totals())
			assert.Equal(t, tc.expected, level.Pool.Availability())
		})
	}
}

func TestService_Generate_ProcessCount(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		number   int
		expected int
	}{
		{number: 1, expected: 3},
		{number: 2, expected: 4},
		{number: 4, expected: 6},
		{number: 9, expected: 6},
	}
	for _, tc := range testCases {
		level, err := New(WithSeed(7)).Generate(ctx, tc.number)
		require.NoError(t, err)
		assert.Len(t, level.Processes, tc.expected, "level %d", tc.number)
	}
}

func TestService_Generate_Determinism(t *testing.T) {
	ctx := context.Background()
	first, err := New(WithSeed(42)).Generate(ctx, 4)
	require.NoError(t, err)
	second, err := New(WithSeed(42)).Generate(ctx, 4)
	require.NoError(t, err)

	require.Len(t, second.Processes, len(first.Processes))
	for i, proc := range first.Processes {
		assert.Equal(t, proc.Name, second.Processes[i].Name)
		assert.Equal(t, proc.Required, second.Processes[i].Required)
	}
}

func TestService_Generate_Identity(t *testing.T) {
	ctx := context.Background()
	level, err := New(WithSeed(3)).Generate(ctx, 3)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i, proc := range level.Processes {
		assert.Equal(t, "waiting", proc.State)
		assert.Empty(t, proc.Allocated)
		assert.NotEmpty(t, proc.Name)
		expected := "P" + string(rune('1'+i))
		assert.Equal(t, expected, proc.ID)
		assert.False(t, seen[proc.Name], "template %s sampled twice", proc.Name)
		seen[proc.Name] = true
		for kind, amount := range proc.Required {
			assert.True(t, kind.Valid())
			assert.GreaterOrEqual(t, amount, 1)
		}
	}
	assert.Equal(t, 20, level.MoveLimit)
	assert.Equal(t, 0, level.Moves)
}

func TestService_Generate_PerturbationFloor(t *testing.T) {
	ctx := context.Background()
	service := New(
		WithSeed(11),
		WithCatalog(catalog.New(catalog.WithTemplates([]*catalog.Template{
			{Name: "Minimal", Demand: resource.Amounts{resource.KindCPU: 1}},
			{Name: "Tiny", Demand: resource.Amounts{resource.KindMemory: 1}},
		}))),
	)
	for number := 3; number <= 6; number++ {
		level, err := service.Generate(ctx, number)
		require.NoError(t, err)
		for _, proc := range level.Processes {
			for kind, amount := range proc.Required {
				assert.GreaterOrEqual(t, amount, 1, "level %d process %s kind %s", number, proc.ID, kind)
			}
		}
	}
}

func TestService_Generate_Invalid(t *testing.T) {
	ctx := context.Background()
	_, err := New().Generate(ctx, 0)
	assert.Error(t, err)

	_, err = New(WithConfig(Config{})).Generate(ctx, 1)
	assert.Error(t, err)
}
