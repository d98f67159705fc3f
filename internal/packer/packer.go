// Package packer reads and writes the legacy binary container format: a zip
// archive holding named JSON documents (tweet.json, dm.json, ads.json).
package packer

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"sort"
	"strconv"

	"github.com/klauspost/compress/zip"

	"twsave/internal/providers"
)

const (
	TweetDocument = "tweet.json"
	DMDocument    = "dm.json"
	AdsDocument   = "ads.json"
)

var ErrMissingDocument = errors.New("container document missing")

type PackerInterface interface {
	ReadDocument(container []byte, name string) ([]byte, error)
	WriteContainer(docs map[string][]byte) ([]byte, error)
}

type Packer struct {
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func NewPacker(cache providers.CacheProviderInterface, logger providers.Logger) PackerInterface {
	return &Packer{cache: cache, logger: logger}
}

// ReadDocument extracts the named document from a container. Parsed document
// bytes are memoized in the cache keyed by container content hash.
func (p *Packer) ReadDocument(container []byte, name string) ([]byte, error) {
	key := docCacheKey(container, name)
	if val, ok := p.cache.Get(key); ok {
		return val, nil
	}

	zr, err := zip.NewReader(bytes.NewReader(container), int64(len(container)))
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}

	for _, file := range zr.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in container: %w", name, err)
		}
		doc, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s from container: %w", name, err)
		}
		p.cache.Set(key, doc)
		return doc, nil
	}

	p.logger.Debugf(providers.TypeRestore, "Container holds no %s document", name)
	return nil, fmt.Errorf("%w: %s", ErrMissingDocument, name)
}

// WriteContainer packs the named documents into a new container. Documents
// are stored in name order so identical inputs produce identical bytes.
func (p *Packer) WriteContainer(docs map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("create %s in container: %w", name, err)
		}
		if _, err := w.Write(docs[name]); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write %s to container: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close container: %w", err)
	}
	return buf.Bytes(), nil
}

func docCacheKey(container []byte, name string) string {
	h := fnv.New64a()
	h.Write(container)
	return strconv.FormatUint(h.Sum64(), 16) + ":" + name
}
