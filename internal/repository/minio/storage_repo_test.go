package minio

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucket = "catalog"

// fakeS3 — минимальный S3 с path-style адресацией: GET, PUT и DELETE объектов одного бакета.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if bucket != testBucket {
		writeS3Error(w, http.StatusNotFound, "NoSuchBucket", bucket, key)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		data, ok := f.objects[key]
		if !ok {
			writeS3Error(w, http.StatusNotFound, "NoSuchKey", bucket, key)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("ETag", `"etag"`)
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	case http.MethodPut:
		data, err := readPayload(r)
		if err != nil {
			writeS3Error(w, http.StatusBadRequest, "InvalidRequest", bucket, key)
			return
		}
		f.objects[key] = data
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// readPayload снимает aws-chunked кодирование, если клиент его использовал.
func readPayload(r *http.Request) ([]byte, error) {
	if !strings.HasPrefix(r.Header.Get("X-Amz-Content-Sha256"), "STREAMING-") {
		return io.ReadAll(r.Body)
	}

	var out bytes.Buffer
	br := bufio.NewReader(r.Body)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, err
		}
		sizeHex, _, _ := strings.Cut(strings.TrimSpace(line), ";")
		size, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return out.Bytes(), nil
		}
		if _, err := io.CopyN(&out, br, size); err != nil {
			return nil, err
		}
		if _, err := br.Discard(2); err != nil {
			return nil, err
		}
	}
}

func writeS3Error(w http.ResponseWriter, status int, code, bucket, key string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>`+
		`<Error><Code>%s</Code><Message>%s</Message><BucketName>%s</BucketName><Key>%s</Key><RequestId>1</RequestId></Error>`,
		code, code, bucket, key)
}

func newTestRepo(t *testing.T, bucket string) *StorageRepo {
	t.Helper()

	srv := httptest.NewServer(&fakeS3{objects: map[string][]byte{}})
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	mc, err := minio.New(u.Host, &minio.Options{
		Creds:        credentials.NewStaticV4("user", "password", ""),
		Region:       "us-east-1",
		BucketLookup: minio.BucketLookupPath,
	})
	require.NoError(t, err)

	return NewStorageRepo(mc, &cfg.MinIOCfg{BucketName: bucket, MaxRetries: 1})
}

func TestStorageRepo_GetMissingKey(t *testing.T) {
	repo := newTestRepo(t, testBucket)

	_, err := repo.Get(context.Background(), "products")
	assert.ErrorIs(t, err, e.ErrStorageKeyNotFound)
}

func TestStorageRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, testBucket)

	require.NoError(t, repo.Set(ctx, "products", []byte(`[{"id":1}]`)))
	require.NoError(t, repo.SetMany(ctx, map[string][]byte{
		"categories": []byte(`[{"id":"tea"}]`),
	}))

	data, err := repo.Get(ctx, "products")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(data))

	data, err = repo.Get(ctx, "categories")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"tea"}]`, string(data))

	require.NoError(t, repo.Delete(ctx, "products"))
	_, err = repo.Get(ctx, "products")
	assert.ErrorIs(t, err, e.ErrStorageKeyNotFound)
}

func TestStorageRepo_MissingBucketIsNotMissingKey(t *testing.T) {
	repo := newTestRepo(t, "absent")

	_, err := repo.Get(context.Background(), "products")
	require.Error(t, err)
	assert.NotErrorIs(t, err, e.ErrStorageKeyNotFound)
}
