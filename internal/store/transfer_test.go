package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/appshelf/internal/catalog"
)

func TestExport_Empty(t *testing.T) {
	s, _, _ := createTestStore(t)

	out, err := s.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestExport_Golden(t *testing.T) {
	s, _, _ := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAll(ctx, []catalog.Record{
		{
			ID:                "b2",
			Name:              "F-Droid",
			PackageIdentifier: "org.fdroid.fdroid",
			Categories:        []string{},
			Description:       "",
		},
		{
			ID:                "a1",
			Name:              "Signal",
			PackageIdentifier: "org.thoughtcrime.securesms",
			Categories:        []string{"social", "privacy"},
			Description:       "Private messenger",
			Icon:              catalog.StringPtr("data:image/png;base64,iVBORw0KGgo="),
		},
	}))

	out, err := s.Export(ctx)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export", []byte(out))
}

func TestExport_ContainsFields(t *testing.T) {
	s, _, _ := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveAll(ctx, []catalog.Record{{ID: "1", Name: "Test App", PackageIdentifier: "com.test.app"}}))

	out, err := s.Export(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Test App"`)
	assert.NotContains(t, out, `"icon"`)
}

func TestImport_InvalidJSON(t *testing.T) {
	s, _, _ := createTestStore(t)

	_, err := s.Import(context.Background(), "not valid json {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to import data")

	var importErr *ImportError
	assert.True(t, errors.As(err, &importErr))
	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
	assert.False(t, errors.Is(err, ErrInvalidFormat))
}

func TestImport_NotAnArray(t *testing.T) {
	s, _, _ := createTestStore(t)

	_, err := s.Import(context.Background(), `{"name":"x"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid data format")
	assert.Contains(t, err.Error(), "Failed to import data")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestImport_ArrayOfNonRecords(t *testing.T) {
	s, _, _ := createTestStore(t)

	_, err := s.Import(context.Background(), `[1, "two"]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to import data")
}

func TestImport_EmptyArray(t *testing.T) {
	s, _, _ := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveAll(ctx, testRecords()))

	got, err := s.Import(ctx, "[]")
	require.NoError(t, err)
	assert.Equal(t, []catalog.Record{}, got)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImport_ReplacesExisting(t *testing.T) {
	s, _, _ := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveAll(ctx, testRecords()))

	got, err := s.Import(ctx, `[{"id":"1","name":"Test App","packageName":"com.test.app","category":["utility"],"description":"Test description"}]`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"utility"}, got[0].Categories)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, all)
}

func TestImport_FailureLeavesCatalogUntouched(t *testing.T) {
	s, _, _ := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveAll(ctx, testRecords()))

	_, err := s.Import(ctx, `{"not":"an array"}`)
	require.Error(t, err)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, testRecords(), all)
}

func TestExportImport_RoundTrip(t *testing.T) {
	src, _, _ := createTestStore(t)
	dst, _, _ := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, src.SaveAll(ctx, testRecords()))
	out, err := src.Export(ctx)
	require.NoError(t, err)

	imported, err := dst.Import(ctx, out)
	require.NoError(t, err)
	if diff := cmp.Diff(testRecords(), imported); diff != "" {
		t.Errorf("Import() mismatch (-want +got):\n%s", diff)
	}

	again, err := dst.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestImport_MissingCategoryExportsEmptyArray(t *testing.T) {
	s, _, _ := createTestStore(t)
	ctx := context.Background()

	got, err := s.Import(ctx, `[{"id":"1","name":"x","packageName":"p","description":""}]`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{}, got[0].Categories)

	out, err := s.Export(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, `"category": []`)
	assert.NotContains(t, out, "null")
}

func TestSaveAll_NilCategoriesStoredAsEmptyArray(t *testing.T) {
	s, kv, _ := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAll(ctx, []catalog.Record{{ID: "a", Name: "A"}}))

	var data string
	require.NoError(t, rawDB(t, s).QueryRow(`SELECT data FROM records WHERE id = 'a'`).Scan(&data))
	assert.Contains(t, data, `"category":[]`)

	require.NoError(t, s.replaceKV(ctx, []catalog.Record{{ID: "b"}}))
	blob, ok, err := kv.Get(LegacyKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, blob, `"category":[]`)
}
