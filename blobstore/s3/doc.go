// Package s3 implements blobstore.BlobStore on Amazon S3 using the AWS
// SDK v2. Ranged GetObject requests back Blob.ReadAt, and uploads go
// through the s3/manager uploader so large containers stream in parts.
package s3
