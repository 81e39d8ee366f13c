package storage

import (
	"DMR_Link/config"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// maxPresignExpiry is the longest validity S3 accepts for a presigned URL.
const maxPresignExpiry = 7 * 24 * time.Hour

// MinioStore implements FileStore over a MinIO bucket. Sharing links are
// presigned GET URLs: MinIO cannot enforce the password and cannot revoke a
// presigned URL, so DeleteSharingLink is a no-op and links die at expiry.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore builds a FileStore from a MinIO client.
func NewMinioStore(client *minio.Client, bucket string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket}
}

// ListChildren lists objects and common prefixes one level below folderPath.
func (s *MinioStore) ListChildren(ctx context.Context, folderPath string) ([]Entry, error) {
	prefix := strings.Trim(folderPath, "/")
	if prefix != "" {
		prefix += "/"
	}
	entries := []Entry{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if obj.Err != nil {
			return nil, &RemoteStoreError{Op: "list", Path: folderPath, Err: obj.Err}
		}
		key := strings.TrimSuffix(obj.Key, "/")
		if key == strings.TrimSuffix(prefix, "/") {
			continue // folder marker object
		}
		entries = append(entries, Entry{
			Name:  strings.TrimPrefix(key, prefix),
			Path:  "/" + key,
			IsDir: strings.HasSuffix(obj.Key, "/"),
		})
	}
	return entries, nil
}

// CreateSharingLink presigns a GET URL valid until expiresAt.
func (s *MinioStore) CreateSharingLink(ctx context.Context, path, _ string, expiresAt time.Time) (string, error) {
	expiry := time.Until(expiresAt)
	if expiry < time.Second {
		expiry = time.Second
	}
	if expiry > maxPresignExpiry {
		expiry = maxPresignExpiry
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, strings.TrimPrefix(path, "/"), expiry, nil)
	if err != nil {
		return "", &RemoteStoreError{Op: "create_sharing_link", Path: path, Err: err}
	}
	return u.String(), nil
}

// DeleteSharingLink is a no-op: presigned URLs expire on their own.
func (s *MinioStore) DeleteSharingLink(ctx context.Context, linkID string) error {
	return nil
}

// InitMinio initializes the MinIO client and bucket.
func InitMinio() *MinioStore {
	client, err := minio.New(fmt.Sprintf("%s:%s", config.AppConfig.MinioHost, config.AppConfig.MinioPort), &minio.Options{
		Creds:  credentials.NewStaticV4(config.AppConfig.MinioUsername, config.AppConfig.MinioPassword, ""),
		Secure: config.AppConfig.MinioUseSSL,
	})
	if err != nil {
		log.Fatalln("minio error:", err)
	}
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, config.AppConfig.BucketName)
	if err != nil {
		log.Fatalln("check bucket fail:", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.AppConfig.BucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatalln("create bucket fail:", err)
		}
	}
	log.Println("init minio success")
	return NewMinioStore(client, config.AppConfig.BucketName)
}

// InitSynology builds the FileStation client from AppConfig.
func InitSynology() *SynologyStore {
	if config.AppConfig.SynoUser == "" {
		log.Println("synology: SYNO_USER is empty, login will fail")
	}
	return NewSynologyStore(SynologyConfig{
		Host:               config.AppConfig.SynoHost,
		Port:               config.AppConfig.SynoPort,
		Secure:             config.AppConfig.SynoSecure,
		InsecureSkipVerify: config.AppConfig.SynoInsecureSkipVerify,
		User:               config.AppConfig.SynoUser,
		Password:           config.AppConfig.SynoPassword,
		Timeout:            config.AppConfig.FileStoreTimeout,
	})
}

// InitFileStore builds the configured backend wrapped in the listing cache.
func InitFileStore() FileStore {
	var store FileStore
	switch config.AppConfig.FileStoreBackend {
	case "minio":
		store = InitMinio()
	case "synology", "":
		store = InitSynology()
	default:
		log.Fatalf("unknown FILESTORE_BACKEND %q", config.AppConfig.FileStoreBackend)
	}
	return NewCachedStore(store, config.AppConfig.FolderCacheSize, config.AppConfig.FolderCacheTTL)
}
