package lang

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// docCache stores parsed documents keyed by the xxh3 hash of their source.
// Parsing is deterministic and documents are immutable once returned, so
// identical sources can safely share one document across callers.
var docCache sync.Map

// ParseText parses source text into a document. Option-free calls are
// served from the package-level cache when the same source has been parsed
// before.
func ParseText(ctx context.Context, src string, opts ...Option) (*Document, error) {
	if len(opts) == 0 {
		return parseTextCached(ctx, src)
	}

	return parseText(ctx, src, opts...)
}

// ParseReader drains the reader and parses its contents. The reader is
// wrapped with an asynchronous read-ahead buffer so data is prefetched
// while earlier chunks are consumed.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Document, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, err
	}

	return ParseText(ctx, string(data), opts...)
}

func parseTextCached(ctx context.Context, src string) (*Document, error) {
	key := xxh3.HashString(src)

	if cached, ok := docCache.Load(key); ok {
		return cached.(*Document), nil
	}

	doc, err := parseText(ctx, src)
	if err != nil {
		return nil, err
	}

	docCache.Store(key, doc)

	return doc, nil
}

func parseText(ctx context.Context, src string, opts ...Option) (*Document, error) {
	p := NewParser(NewLexer(src), opts...)

	p.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(src)))

	doc, err := p.Parse()
	if err != nil {
		return nil, err
	}

	p.logger.TraceContext(ctx, "document built",
		slog.Int("entry_count", doc.Len()))

	return doc, nil
}
