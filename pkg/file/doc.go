// Package file stores generated output files on the local filesystem or in
// Amazon S3 (and S3-compatible services such as MinIO).
//
// Both backends implement Storage:
//
//   - LocalStorage confines every path to its base directory, creates
//     directories on demand and writes through a temporary file that is
//     renamed into place, so readers never observe a half-written file.
//   - S3Storage uploads each file as one object under an optional key
//     prefix using github.com/aws/aws-sdk-go-v2. Directories do not exist
//     in S3, so MkdirAll only checks the context.
//
// # Usage
//
//	store, err := file.NewLocalStorage("out")
//	if err != nil {
//		return err
//	}
//	if err := store.MkdirAll(ctx, "qr_pngs"); err != nil {
//		return err
//	}
//	f, err := store.Write(ctx, "qr_pngs/qr_1.png", bytes.NewReader(png), file.ContentType(".png"))
//
// # Error Handling
//
// Errors wrap package sentinels such as ErrInvalidPath, ErrFailedToWriteFile
// and, for S3, ErrAccessDenied or ErrBucketNotFound (see classifyS3Error).
// Compare with errors.Is.
package file
