package pdfemit

// Encryptor transforms a stream's raw bytes before they are written
// into the PDF body, keyed by the object number the stream is being
// written under (most document encryption schemes derive a per-object
// key from it). Callers that do not encrypt their output pass
// IdentityEncryptor{}.
type Encryptor interface {
	EncryptStream(data []byte, objectNumber int) ([]byte, error)
}

// IdentityEncryptor is a no-op Encryptor.
type IdentityEncryptor struct{}

// EncryptStream returns data unchanged.
func (IdentityEncryptor) EncryptStream(data []byte, objectNumber int) ([]byte, error) {
	return data, nil
}

// FileReader loads the raw bytes of a pooled font file given the
// Dir/File recorded on a FontEntry. Production callers typically wrap
// os.ReadFile joined with filepath.Join(dir, file).
type FileReader func(dir, file string) ([]byte, error)
