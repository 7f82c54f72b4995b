package minio

import (
	"context"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpgaflow/netlist/blobstore"
)

func TestKeyMapping(t *testing.T) {
	tests := []struct {
		root string
		name string
		want string
	}{
		{root: "netlists/", name: "top.snap", want: "netlists/top.snap"},
		{root: "netlists/", name: "snap/a", want: "netlists/snap/a"},
		{root: "netlists", name: "top.snap", want: "netlists/top.snap"},
		{root: "", name: "top.snap", want: "top.snap"},
	}
	for _, tt := range tests {
		s := NewStore(nil, "bucket", tt.root)
		assert.Equal(t, tt.want, s.key(tt.name), "root %q name %q", tt.root, tt.name)
		assert.Equal(t, tt.name, s.trimKey(s.key(tt.name)), "round trip for root %q", tt.root)
	}
}

func TestListPrefixKeepsTrailingSlash(t *testing.T) {
	tests := []struct {
		root   string
		prefix string
		want   string
	}{
		// "snap/" must not match a key like "snapple".
		{root: "netlists/", prefix: "snap/", want: "netlists/snap/"},
		{root: "netlists/", prefix: "snap", want: "netlists/snap"},
		{root: "netlists/", prefix: "", want: "netlists/"},
		{root: "", prefix: "snap/", want: "snap/"},
		{root: "", prefix: "", want: ""},
	}
	for _, tt := range tests {
		s := NewStore(nil, "bucket", tt.root)
		assert.Equal(t, tt.want, s.listPrefix(tt.prefix), "root %q prefix %q", tt.root, tt.prefix)
	}
}

// TestIntegration_MinioStore requires a running MinIO instance; set
// MINIO_ENDPOINT (e.g. "localhost:9000") to enable it.
func TestIntegration_MinioStore(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("Skipping MinIO integration test: MINIO_ENDPOINT not set")
	}
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := "test-netlist"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	require.NoError(t, err)

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "snap/a", []byte("alpha")))
	require.NoError(t, store.Put(ctx, "snapple", []byte("x")))
	defer func() {
		_ = store.Delete(ctx, "snap/a")
		_ = store.Delete(ctx, "snapple")
	}()

	data, err := store.Get(ctx, "snap/a")
	require.NoError(t, err)
	assert.Equal(t, []byte("alpha"), data)

	names, err := store.List(ctx, "snap/")
	require.NoError(t, err)
	assert.Equal(t, []string{"snap/a"}, names)

	require.NoError(t, store.Delete(ctx, "snap/a"))
	require.NoError(t, store.Delete(ctx, "snap/a")) // idempotent
	_, err = store.Get(ctx, "snap/a")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
