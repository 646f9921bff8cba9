package contact

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() Fields {
	return Fields{
		Name:    "  Jamie Carter ",
		Email:   " jamie@example.com ",
		Phone:   " 555-0100 ",
		Details: "\nWant a turtle plate\n",
	}
}

func TestNewSubmission(t *testing.T) {
	t.Parallel()

	t.Run("trims fields", func(t *testing.T) {
		t.Parallel()

		sub, err := NewSubmission(validFields())
		require.NoError(t, err)
		assert.Equal(t, "Jamie Carter", sub.Name)
		assert.Equal(t, "jamie@example.com", sub.Email)
		assert.Equal(t, "555-0100", sub.Phone)
		assert.Equal(t, "Want a turtle plate", sub.Details)
		assert.False(t, sub.ConsentToText)
		assert.False(t, sub.HasAttachment())
	})

	t.Run("consent only for literal yes", func(t *testing.T) {
		t.Parallel()

		for value, want := range map[string]bool{"yes": true, " yes ": true, "on": false, "Yes": false, "": false} {
			f := validFields()
			f.ConsentText = value
			sub, err := NewSubmission(f)
			require.NoError(t, err)
			assert.Equal(t, want, sub.ConsentToText, value)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		t.Parallel()

		tests := map[string]func(*Fields){
			"name":    func(f *Fields) { f.Name = "" },
			"email":   func(f *Fields) { f.Email = "   " },
			"details": func(f *Fields) { f.Details = "\n\t" },
			"all": func(f *Fields) {
				f.Name, f.Email, f.Details = "", "", ""
			},
		}
		for name, mutate := range tests {
			f := validFields()
			mutate(&f)
			_, err := NewSubmission(f)

			var inErr *InputError
			require.ErrorAs(t, err, &inErr, name)
			assert.ErrorIs(t, err, ErrMissingFields, name)
			assert.Equal(t, MessageMissing, inErr.Message())
		}
	})

	t.Run("missing fields reported before bad email and big file", func(t *testing.T) {
		t.Parallel()

		f := validFields()
		f.Name = ""
		f.Email = "not-an-email"
		f.Attachment = &Attachment{Size: MaxAttachmentSize + 1}
		_, err := NewSubmission(f)
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()

		for _, email := range []string{"jamie", "jamie@", "@example.com", "jamie example.com"} {
			f := validFields()
			f.Email = email
			_, err := NewSubmission(f)
			assert.ErrorIs(t, err, ErrInvalidEmail, email)
			assert.Equal(t, MessageInvalidEmail, UserMessage(err))
		}
	})
}

func TestNewSubmission_Attachment(t *testing.T) {
	t.Parallel()

	t.Run("at limit accepted", func(t *testing.T) {
		t.Parallel()

		content := bytes.Repeat([]byte{0xAB}, MaxAttachmentSize)
		f := validFields()
		f.Attachment = &Attachment{Filename: "plate.png", ContentType: "image/png", Content: content}

		sub, err := NewSubmission(f)
		require.NoError(t, err)
		require.True(t, sub.HasAttachment())
		assert.Equal(t, int64(5242880), sub.Attachment.Size)
		assert.Equal(t, "plate.png", sub.Attachment.Filename)
		assert.Equal(t, "image/png", sub.Attachment.ContentType)
	})

	t.Run("one byte over limit rejected", func(t *testing.T) {
		t.Parallel()

		f := validFields()
		f.Attachment = &Attachment{Filename: "plate.png", Size: 5242881}

		_, err := NewSubmission(f)
		assert.ErrorIs(t, err, ErrAttachmentTooLarge)
		assert.Equal(t, MessageTooLarge, UserMessage(err))
	})

	t.Run("empty file is no attachment", func(t *testing.T) {
		t.Parallel()

		f := validFields()
		f.Attachment = &Attachment{Filename: "empty.png"}

		sub, err := NewSubmission(f)
		require.NoError(t, err)
		assert.False(t, sub.HasAttachment())
	})

	t.Run("defaults filename and content type", func(t *testing.T) {
		t.Parallel()

		f := validFields()
		f.Attachment = &Attachment{Content: []byte("x")}

		sub, err := NewSubmission(f)
		require.NoError(t, err)
		assert.Equal(t, DefaultFilename, sub.Attachment.Filename)
		assert.Equal(t, DefaultContentType, sub.Attachment.ContentType)
	})

	t.Run("does not alias caller attachment", func(t *testing.T) {
		t.Parallel()

		orig := &Attachment{Content: []byte("x")}
		f := validFields()
		f.Attachment = orig

		sub, err := NewSubmission(f)
		require.NoError(t, err)
		assert.NotSame(t, orig, sub.Attachment)
		assert.Empty(t, orig.Filename)
	})
}

func TestNewSubmission_Properties(t *testing.T) {
	t.Parallel()

	properties := gopter.NewProperties(nil)

	blank := gen.OneConstOf("", " ", "\t", "\n", "  \r\n ")

	properties.Property("any blank required field is rejected", prop.ForAll(
		func(mask uint8, ws string, other string) bool {
			mask = mask%7 + 1
			f := Fields{Name: "N" + other, Email: "a@example.com", Details: "D" + other}
			if mask&1 != 0 {
				f.Name = ws
			}
			if mask&2 != 0 {
				f.Email = ws
			}
			if mask&4 != 0 {
				f.Details = ws
			}
			_, err := NewSubmission(f)
			return errors.Is(err, ErrMissingFields)
		},
		gen.UInt8(),
		blank,
		gen.AlphaString(),
	))

	properties.Property("size limit boundary", prop.ForAll(
		func(size int64) bool {
			f := Fields{Name: "N", Email: "a@example.com", Details: "D", Attachment: &Attachment{Size: size}}
			_, err := NewSubmission(f)
			if size > MaxAttachmentSize {
				return errors.Is(err, ErrAttachmentTooLarge)
			}
			return err == nil
		},
		gen.Int64Range(1, 2*MaxAttachmentSize),
	))

	properties.Property("trimmed values never keep outer whitespace", prop.ForAll(
		func(name string) bool {
			sub, err := NewSubmission(Fields{Name: " " + name + "x ", Email: "a@example.com", Details: "D"})
			return err == nil && sub.Name == strings.TrimSpace(name+"x")
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
