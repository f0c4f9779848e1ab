// Package resolver maps storage URIs to a blobstore.Store and a blob name.
//
// Supported forms:
//
//	s3://bucket/key             Amazon S3 (default AWS configuration chain)
//	minio://endpoint/bucket/key MinIO or other S3-compatible endpoints
//	mem://key                   the resolver's MemoryStore
//	file://path/to/file.png     local filesystem
//	path/to/file.png            local filesystem
//
// A key ending in "/" names a prefix rather than a single blob.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hupe1980/posterize/blobstore"
	"github.com/hupe1980/posterize/blobstore/minio"
	"github.com/hupe1980/posterize/blobstore/s3"
)

// ErrUnsupportedScheme is returned for URIs with an unknown scheme.
var ErrUnsupportedScheme = errors.New("resolver: unsupported scheme")

// Location is a blob (or prefix) within a store.
type Location struct {
	Store blobstore.Store
	Name  string
	// URI is the string the location was resolved from.
	URI string
}

// IsPrefix reports whether the location names a prefix.
func (l Location) IsPrefix() bool {
	return l.Name == "" || strings.HasSuffix(l.Name, "/")
}

// Join returns the location of name below a prefix location.
func (l Location) Join(name string) Location {
	return Location{Store: l.Store, Name: l.Name + name, URI: l.URI + name}
}

func (l Location) String() string {
	if l.URI != "" {
		return l.URI
	}
	return l.Name
}

// Options configures remote backends.
type Options struct {
	// Region overrides the AWS region for s3:// URIs.
	Region string
	// MinioSecure enables HTTPS for minio:// URIs.
	MinioSecure bool
}

// Resolver resolves URIs and caches one store per bucket.
// It is safe for concurrent use.
type Resolver struct {
	opts   Options
	memory *blobstore.MemoryStore

	mu     sync.Mutex
	stores map[string]blobstore.Store
}

// New creates a Resolver.
func New(opts Options) *Resolver {
	return &Resolver{
		opts:   opts,
		memory: blobstore.NewMemoryStore(),
		stores: make(map[string]blobstore.Store),
	}
}

// Memory returns the store backing mem:// URIs.
func (r *Resolver) Memory() *blobstore.MemoryStore {
	return r.memory
}

// Resolve maps uri to a Location.
func (r *Resolver) Resolve(ctx context.Context, uri string) (Location, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return r.local(uri), nil
	}

	switch scheme {
	case "mem":
		return Location{Store: r.memory, Name: rest, URI: uri}, nil
	case "file":
		loc := r.local(rest)
		loc.URI = uri
		return loc, nil
	case "s3":
		bucket, key, err := splitBucket(uri, rest)
		if err != nil {
			return Location{}, err
		}
		store, err := r.store("s3://"+bucket, func() (blobstore.Store, error) {
			var opts []s3.Option
			if r.opts.Region != "" {
				opts = append(opts, s3.WithRegion(r.opts.Region))
			}
			return s3.New(ctx, bucket, opts...)
		})
		if err != nil {
			return Location{}, err
		}
		return Location{Store: store, Name: key, URI: uri}, nil
	case "minio":
		endpoint, path, ok := strings.Cut(rest, "/")
		if !ok || endpoint == "" {
			return Location{}, fmt.Errorf("resolver: %q: missing bucket", uri)
		}
		bucket, key, err := splitBucket(uri, path)
		if err != nil {
			return Location{}, err
		}
		store, err := r.store("minio://"+endpoint+"/"+bucket, func() (blobstore.Store, error) {
			return minio.New(endpoint, bucket, minio.WithSecure(r.opts.MinioSecure))
		})
		if err != nil {
			return Location{}, err
		}
		return Location{Store: store, Name: key, URI: uri}, nil
	default:
		return Location{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

// Resolve maps uri to a Location with a one-off Resolver.
func Resolve(ctx context.Context, uri string, opts Options) (Location, error) {
	return New(opts).Resolve(ctx, uri)
}

func (r *Resolver) local(p string) Location {
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, string(filepath.Separator)) {
		return Location{Store: r.localStore(filepath.Clean(p)), Name: "", URI: p}
	}
	dir, file := filepath.Split(p)
	return Location{Store: r.localStore(filepath.Clean(dir)), Name: file, URI: p}
}

func (r *Resolver) localStore(root string) blobstore.Store {
	s, _ := r.store("file://"+root, func() (blobstore.Store, error) {
		return blobstore.NewLocalStore(root), nil
	})
	return s
}

func (r *Resolver) store(key string, create func() (blobstore.Store, error)) (blobstore.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[key]; ok {
		return s, nil
	}
	s, err := create()
	if err != nil {
		return nil, err
	}
	r.stores[key] = s
	return s, nil
}

func splitBucket(uri, rest string) (bucket, key string, err error) {
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("resolver: %q: missing bucket", uri)
	}
	if key, err = url.PathUnescape(key); err != nil {
		return "", "", fmt.Errorf("resolver: %q: %w", uri, err)
	}
	return bucket, key, nil
}
