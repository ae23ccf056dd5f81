// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRuntime struct {
	hasImage bool
	output   string
	gotInput []byte
}

func (f *fakeRuntime) Name() string { return "docker" }
func (f *fakeRuntime) Available(context.Context) bool { return true }
func (f *fakeRuntime) ImageExists(_ context.Context, image string) error {
	if !f.hasImage {
		return errors.New("no such image: " + image)
	}
	return nil
}

func (f *fakeRuntime) Run(_ context.Context, _ string, stdin io.Reader, stdout io.Writer) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, stdin); err != nil {
		return err
	}
	f.gotInput = buf.Bytes()
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestMarkitdownConverter(t *testing.T) {
	rt := &fakeRuntime{hasImage: true, output: "# Syllabus\n"}
	m, err := NewMarkitdownConverter(context.Background(), rt)
	require.NoError(t, err)

	path := writeFile(t, "s.pdf", []byte("%PDF-1.7 body"))
	doc, err := NewReaderWith(m).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# Syllabus\n", doc.Text)
	assert.Equal(t, []byte("%PDF-1.7 body"), rt.gotInput)
}

func TestMarkitdownMissingImage(t *testing.T) {
	_, err := NewMarkitdownConverter(context.Background(), &fakeRuntime{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markitdown image not available in docker")
}

func TestMarkitdownEmptyOutput(t *testing.T) {
	m, err := NewMarkitdownConverter(context.Background(), &fakeRuntime{hasImage: true})
	require.NoError(t, err)

	_, err = NewReaderWith(m).Read(context.Background(), writeFile(t, "s.docx", []byte("PK")))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}
