package catalog

import (
	"context"
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/gridlock/model/resource"
	"github.com/viant/gridlock/service/meta"
)

//go:embed testdata/*
var testFS embed.FS

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	service := New(WithMetaService(meta.New(afs.New(), "embed:///testdata", &testFS)))

	templates, err := service.Load(ctx, "catalog.yaml")
	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, "Render Farm", templates[0].Name)
	assert.Equal(t, 3, templates[0].Demand.Get(resource.KindCPU))
	assert.Equal(t, 2, templates[2].Demand.Get(resource.KindPrinter))

	// active set switched to the loaded document
	assert.Len(t, service.Templates(), 3)
	assert.Nil(t, service.Lookup("Text Editor"))
	assert.NotNil(t, service.Lookup("Log Archiver"))

	// second load is served from cache
	again, err := service.Load(ctx, "catalog.yaml")
	require.NoError(t, err)
	assert.Len(t, again, 3)
}

func TestService_LoadInvalid(t *testing.T) {
	ctx := context.Background()
	service := New(WithMetaService(meta.New(afs.New(), "embed:///testdata", &testFS)))
	_, err := service.Load(ctx, "missing.yaml")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	templates := Default()
	require.Len(t, templates, 8)
	assert.NoError(t, Validate(templates))

	compiler := New().Lookup("Compiler")
	require.NotNil(t, compiler)
	assert.Equal(t, resource.Amounts{
		resource.KindCPU:    2,
		resource.KindMemory: 1,
		resource.KindDisk:   1,
	}, compiler.Demand)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		templates []*Template
		expectErr bool
	}{
		{
			name:      "empty catalog",
			templates: nil,
			expectErr: true,
		},
		{
			name: "duplicate name",
			templates: []*Template{
				{Name: "Backup", Demand: resource.Amounts{resource.KindDisk: 1}},
				{Name: "Backup", Demand: resource.Amounts{resource.KindDisk: 2}},
			},
			expectErr: true,
		},
		{
			name: "unknown kind",
			templates: []*Template{
				{Name: "Scanner", Demand: resource.Amounts{resource.Kind("gpu"): 1}},
			},
			expectErr: true,
		},
		{
			name: "non-positive demand",
			templates: []*Template{
				{Name: "Scanner", Demand: resource.Amounts{resource.KindCPU: 0}},
			},
			expectErr: true,
		},
		{
			name: "valid",
			templates: []*Template{
				{Name: "Scanner", Demand: resource.Amounts{resource.KindCPU: 1}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.templates)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_Upsert(t *testing.T) {
	service := New()
	require.NoError(t, service.Upsert(&Template{
		Name:   "Browser",
		Demand: resource.Amounts{resource.KindCPU: 1, resource.KindMemory: 4},
	}))
	assert.Len(t, service.Templates(), 8)
	assert.Equal(t, 4, service.Lookup("Browser").Demand.Get(resource.KindMemory))

	require.NoError(t, service.Upsert(&Template{
		Name:   "Indexer",
		Demand: resource.Amounts{resource.KindDisk: 1},
	}))
	assert.Len(t, service.Templates(), 9)

	assert.Error(t, service.Upsert(nil))
	assert.Error(t, service.Upsert(&Template{Name: "Bad", Demand: resource.Amounts{resource.KindCPU: -1}}))
}
