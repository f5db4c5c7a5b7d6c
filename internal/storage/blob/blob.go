// Package blob is a disk-backed object store. Each bucket is a directory
// under the upload root; saved objects are reachable at
// <base URL>/uploads/<bucket>/<name>.
package blob

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const (
	BucketProfilePics  = "profile-pics"
	BucketResumes      = "resumes"
	BucketCompanyLogos = "company-logos"
)

var ErrUnsupportedType = errors.New("unsupported file type")

var allowedTypes = map[string][]string{
	BucketProfilePics:  {"image/png", "image/jpeg"},
	BucketCompanyLogos: {"image/png", "image/jpeg"},
	BucketResumes: {
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
}

type Store struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

func New(root, baseURL string, logger *zap.Logger) (*Store, error) {
	for _, bucket := range []string{BucketProfilePics, BucketResumes, BucketCompanyLogos} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("create bucket dir %s: %w", bucket, err)
		}
	}

	logger.Info("blob store ready", zap.String("root", root))

	return &Store{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Root returns the upload root directory, for static file serving.
func (s *Store) Root() string {
	return s.root
}

// Save sniffs the content type, rejects anything the bucket does not allow,
// and writes the object. It returns the public URL.
func (s *Store) Save(bucket, name string, r io.Reader) (string, error) {
	name = sanitize(name)

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	mtype := mimetype.Detect(data)
	if !typeAllowed(bucket, mtype.String()) {
		s.logger.Warn("upload rejected",
			zap.String("bucket", bucket),
			zap.String("name", name),
			zap.String("mime", mtype.String()),
		)
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}

	path := filepath.Join(s.root, bucket, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("failed to write blob",
			zap.String("bucket", bucket),
			zap.String("name", name),
			zap.Error(err),
		)
		return "", fmt.Errorf("write blob: %w", err)
	}

	s.logger.Info("blob stored",
		zap.String("bucket", bucket),
		zap.String("name", name),
		zap.Int("size", len(data)),
	)

	return s.URL(bucket, name), nil
}

// Delete removes the object. Used as compensating cleanup when a write that
// follows an upload fails.
func (s *Store) Delete(bucket, name string) error {
	name = sanitize(name)

	if err := os.Remove(filepath.Join(s.root, bucket, name)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		s.logger.Error("failed to delete blob",
			zap.String("bucket", bucket),
			zap.String("name", name),
			zap.Error(err),
		)
		return fmt.Errorf("delete blob: %w", err)
	}

	return nil
}

func (s *Store) URL(bucket, name string) string {
	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, bucket, sanitize(name))
}

func typeAllowed(bucket, mime string) bool {
	for _, allowed := range allowedTypes[bucket] {
		if mime == allowed {
			return true
		}
	}
	return false
}

// sanitize keeps object names to a single path segment.
func sanitize(name string) string {
	name = filepath.Base(name)
	return strings.ReplaceAll(name, " ", "-")
}

// ProfilePicName, ResumeName and LogoName build object keys in the shape the
// rest of the system expects.
func ProfilePicName(userName string) string {
	return fmt.Sprintf("dp-%s-%d", strings.Join(strings.Fields(userName), "-"), rand.Intn(90000))
}

func ResumeName(userID string) string {
	return fmt.Sprintf("resume-%d-%s", rand.Intn(90000), userID)
}

func LogoName(userID string) string {
	return fmt.Sprintf("logo-%d-%s", rand.Intn(90000), userID)
}
