// Package session serves extraction requests from a host UI over a
// newline-delimited JSON stream.
package session

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/fwojciec/figtext"
)

// maxMessageSize bounds a single request line.
const maxMessageSize = 1 << 20

// Session answers host requests against one loaded document.
type Session struct {
	Extractor figtext.Extractor
	Document  *figtext.Document

	// Base options for each mode. Request exclusions are appended to
	// the exclusions configured here.
	TargetOptions figtext.Options
	PageOptions   figtext.Options

	Logger *slog.Logger
}

// New creates a Session with the default options for each mode.
func New(ex figtext.Extractor, doc *figtext.Document, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		Extractor:     ex,
		Document:      doc,
		TargetOptions: figtext.DefaultTargetOptions(),
		PageOptions:   figtext.DefaultPageOptions(),
		Logger:        logger,
	}
}

// Handle answers a single request. done is true when the host asked to
// close the session; the response is then empty and must not be sent.
func (s *Session) Handle(ctx context.Context, req figtext.Request) (resp figtext.Response, done bool) {
	switch req.Type {
	case figtext.MessageClose:
		return figtext.Response{}, true
	case figtext.MessageExtractText:
	case "":
		return figtext.ErrorResponse(figtext.MsgMalformedMessage), false
	default:
		s.Logger.Warn("unsupported message", "type", req.Type)
		return figtext.ErrorResponse(figtext.MsgUnknownMessage), false
	}

	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("text extraction panicked", "panic", fmt.Sprint(r))
			resp, done = figtext.ErrorResponse(figtext.MsgExtractionFailed), false
		}
	}()

	if s.Document == nil {
		return figtext.ErrorResponse(figtext.MsgNoDocumentLoaded), false
	}
	page, err := s.Document.Page(req.Page)
	if err != nil {
		return s.fail(err), false
	}

	if req.IsWholePage() {
		opts := s.PageOptions
		opts.Exclusions.Components = slices.Concat(opts.Exclusions.Components, req.ExcludedComponents)
		opts.Exclusions.SectionPrefixes = slices.Concat(opts.Exclusions.SectionPrefixes, req.ExcludedSections)

		text, err := s.Extractor.ExtractPage(ctx, page, opts)
		if err != nil {
			return s.fail(err), false
		}
		return figtext.Response{Type: figtext.MessageCopyText, Text: text}, false
	}

	opts := s.TargetOptions
	opts.Exclusions.Components = slices.Concat(opts.Exclusions.Components, req.SkipComponentInstances)

	text, err := s.Extractor.ExtractTargets(ctx, page, req.FrameNames, opts)
	if err != nil {
		return s.fail(err), false
	}
	return figtext.Response{Type: figtext.MessageExtractedText, Text: text}, false
}

// fail converts an extraction error into an error response. Application
// errors carry their own message; anything else is logged and reported
// generically.
func (s *Session) fail(err error) figtext.Response {
	if figtext.ErrorCode(err) != figtext.EINTERNAL {
		s.Logger.Info("extraction rejected", "err", err)
		return figtext.ErrorResponse(figtext.ErrorMessage(err))
	}
	s.Logger.Error("text extraction failed", "err", err)
	return figtext.ErrorResponse(figtext.MsgExtractionFailed)
}

// Serve reads one JSON request per line from r and writes one JSON
// response per line to w until the host sends close, r is exhausted or
// ctx is cancelled. Cancellation is noticed while waiting for input; the
// pending read on r is abandoned.
func (s *Session) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	lines, readErr, stop := readLines(r)
	defer stop()

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var line []byte
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read request: %w", err)
				}
				return nil
			}
			line = l
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var req figtext.Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.Logger.Warn("malformed message", "err", err)
			if err := enc.Encode(figtext.ErrorResponse(figtext.MsgMalformedMessage)); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
			continue
		}

		resp, done := s.Handle(ctx, req)
		if done {
			return nil
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// readLines scans non-empty, trimmed lines from r in its own goroutine.
// The lines channel is closed at EOF, after the scan error (or nil) has
// been sent on the error channel. Calling stop once releases the goroutine
// when it is waiting to deliver a line.
func readLines(r io.Reader) (<-chan []byte, <-chan error, func()) {
	lines := make(chan []byte)
	errc := make(chan error, 1)
	done := make(chan struct{})

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			select {
			case lines <- bytes.Clone(line):
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc, func() { close(done) }
}
