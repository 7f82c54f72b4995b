package s3

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
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

// TestIntegration_S3Store runs against a real bucket; set S3_BUCKET to
// enable it.
func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	prefix := fmt.Sprintf("test-netlist-%d/", time.Now().UnixNano())
	store := NewStore(s3.NewFromConfig(cfg), bucket, prefix)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "snap/a", []byte("alpha")))
	require.NoError(t, store.Put(ctx, "snap/b", []byte("beta")))
	require.NoError(t, store.Put(ctx, "snapple", []byte("x")))
	defer func() {
		for _, name := range []string{"snap/a", "snap/b", "snapple"} {
			_ = store.Delete(ctx, name)
		}
	}()

	data, err := store.Get(ctx, "snap/a")
	require.NoError(t, err)
	assert.Equal(t, []byte("alpha"), data)

	names, err := store.List(ctx, "snap/")
	require.NoError(t, err)
	assert.Equal(t, []string{"snap/a", "snap/b"}, names)

	require.NoError(t, store.Delete(ctx, "snap/a"))
	require.NoError(t, store.Delete(ctx, "snap/a")) // idempotent
	_, err = store.Get(ctx, "snap/a")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
