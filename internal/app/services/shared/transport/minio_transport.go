package transport

import (
	"context"
	"io"
	"strings"

	"claimsync-service/internal/app/contracts"
	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// minioTransport is a clearinghouse mailbox kept in one bucket. Payer
// responses arrive under the inbound prefix and generated claims are
// dropped under the outbound prefix.
type minioTransport struct {
	MinioClient    *minio.Client
	Log            *zap.Logger
	BucketName     string
	InboundPrefix  string
	OutboundPrefix string
}

func NewMinioTransport(minioClient *minio.Client, logger *zap.Logger, bucketName, inboundPrefix, outboundPrefix string) contracts.Transport {
	return &minioTransport{
		MinioClient:    minioClient,
		Log:            logger,
		BucketName:     bucketName,
		InboundPrefix:  inboundPrefix,
		OutboundPrefix: outboundPrefix,
	}
}

func (t *minioTransport) ListInboundFiles(ctx context.Context) ([]models.InboundFile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	t.Log.Info("minioTransport.ListInboundFiles called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketNameKey, t.BucketName),
	)

	objects := t.MinioClient.ListObjects(ctx, t.BucketName, minio.ListObjectsOptions{
		Prefix:    t.InboundPrefix,
		Recursive: true,
	})

	files := make([]models.InboundFile, 0)
	for object := range objects {
		if object.Err != nil {
			t.Log.Error("minioTransport.ListInboundFiles error listing objects",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(object.Err),
			)
			return nil, exceptions.ErrTransportList(exceptions.ErrMinioListObjects(object.Err, t.BucketName), t.BucketName+"/"+t.InboundPrefix)
		}

		name := strings.TrimPrefix(object.Key, t.InboundPrefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		files = append(files, models.InboundFile{
			Name:         name,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}

	t.Log.Info("minioTransport.ListInboundFiles succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingFileCountKey, len(files)),
	)
	return files, nil
}

func (t *minioTransport) FetchFile(ctx context.Context, name string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	objectName := t.InboundPrefix + name
	t.Log.Info("minioTransport.FetchFile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)

	object, err := t.MinioClient.GetObject(ctx, t.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return "", exceptions.ErrTransportFetch(err, name)
	}
	defer object.Close()

	content, err := io.ReadAll(object)
	if err != nil {
		t.Log.Error("minioTransport.FetchFile error reading object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrTransportFetch(err, name)
	}
	return string(content), nil
}

func (t *minioTransport) DeliverFile(ctx context.Context, name, content string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	objectName := t.OutboundPrefix + name
	t.Log.Info("minioTransport.DeliverFile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)

	_, err := t.MinioClient.PutObject(
		ctx,
		t.BucketName,
		objectName,
		strings.NewReader(content),
		int64(len(content)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationEDI,
		},
	)
	if err != nil {
		t.Log.Error("minioTransport.DeliverFile error putting object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return exceptions.ErrTransportDeliver(err, name)
	}
	return nil
}
