package blob

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// pngHeader is a minimal valid PNG signature for MIME sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

var pdfHeader = []byte("%PDF-1.4\n")

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(t.TempDir(), "http://localhost:8080", zap.NewNop())
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return store
}

func TestSave_ImageAccepted(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save(BucketProfilePics, "dp-jane-1234", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	want := "http://localhost:8080/uploads/profile-pics/dp-jane-1234"
	if url != want {
		t.Errorf("Save() url = %q, want %q", url, want)
	}

	if _, err := os.Stat(filepath.Join(store.Root(), BucketProfilePics, "dp-jane-1234")); err != nil {
		t.Errorf("saved object missing on disk: %v", err)
	}
}

func TestSave_RejectsWrongType(t *testing.T) {
	store := newTestStore(t)

	cases := []struct {
		name   string
		bucket string
		data   []byte
	}{
		{"text as profile pic", BucketProfilePics, []byte("hello world")},
		{"pdf as logo", BucketCompanyLogos, pdfHeader},
		{"image as resume", BucketResumes, pngHeader},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := store.Save(c.bucket, "object", bytes.NewReader(c.data))
			if !errors.Is(err, ErrUnsupportedType) {
				t.Errorf("Save() error = %v, want ErrUnsupportedType", err)
			}
		})
	}
}

func TestSave_ResumeAcceptsPDF(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(BucketResumes, "resume-1-abc", bytes.NewReader(pdfHeader)); err != nil {
		t.Fatalf("Save() rejected a PDF resume: %v", err)
	}
}

func TestSave_SanitizesName(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save(BucketCompanyLogos, "../../escape attempt", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	if strings.Contains(url, "..") {
		t.Errorf("Save() url %q contains a path traversal", url)
	}

	if _, err := os.Stat(filepath.Join(store.Root(), BucketCompanyLogos, "escape-attempt")); err != nil {
		t.Errorf("sanitized object missing on disk: %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(BucketResumes, "resume-9-xyz", bytes.NewReader(pdfHeader)); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	if err := store.Delete(BucketResumes, "resume-9-xyz"); err != nil {
		t.Fatalf("Delete() returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(store.Root(), BucketResumes, "resume-9-xyz")); !os.IsNotExist(err) {
		t.Error("object still on disk after Delete()")
	}

	// deleting a missing object is not an error
	if err := store.Delete(BucketResumes, "resume-9-xyz"); err != nil {
		t.Errorf("Delete() on missing object returned error: %v", err)
	}
}

func TestObjectNames(t *testing.T) {
	pic := ProfilePicName("Jane van Doe")
	if !strings.HasPrefix(pic, "dp-Jane-van-Doe-") {
		t.Errorf("ProfilePicName() = %q, want dp-Jane-van-Doe-<n>", pic)
	}

	resume := ResumeName("user-1")
	if !strings.HasPrefix(resume, "resume-") || !strings.HasSuffix(resume, "-user-1") {
		t.Errorf("ResumeName() = %q, want resume-<n>-user-1", resume)
	}

	logo := LogoName("user-2")
	if !strings.HasPrefix(logo, "logo-") || !strings.HasSuffix(logo, "-user-2") {
		t.Errorf("LogoName() = %q, want logo-<n>-user-2", logo)
	}
}
