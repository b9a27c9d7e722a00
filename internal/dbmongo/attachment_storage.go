package dbmongo

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goquote/internal/common"
)

// AttachmentStorage keeps the bytes of post attachments. Their metadata rows
// live in MySQL.
type AttachmentStorage struct {
	gridFS *gridfs.Bucket
}

func NewAttachmentStorage(mongoClient *MongoClient) *AttachmentStorage {
	return &AttachmentStorage{
		gridFS: mongoClient.Attachments,
	}
}

type Attachment struct {
	ID         string           `json:"id"` // GridFS ObjectID
	PostID     string           `json:"post_id"`
	Filename   string           `json:"filename"`
	MimeType   string           `json:"mime_type"`
	Kind       common.MediaKind `json:"kind"`
	Size       int64            `json:"size"`
	UploadedBy string           `json:"uploaded_by"`
	UploadedAt time.Time        `json:"uploaded_at"`
}

func uploadMetadata(postID, mimeType, uploaderID string, at time.Time) bson.M {
	return bson.M{
		"post_id":     postID,
		"kind":        common.DetectMediaKind(mimeType).String(),
		"mime_type":   mimeType,
		"uploaded_by": uploaderID,
		"uploaded_at": at,
	}
}

func (s *AttachmentStorage) Upload(ctx context.Context, postID, filename, mimeType, uploaderID string, content io.Reader) (*Attachment, error) {
	now := time.Now().UTC()
	opts := options.GridFSUpload().SetMetadata(uploadMetadata(postID, mimeType, uploaderID, now))

	stream, err := s.gridFS.OpenUploadStream(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}

	size, err := io.Copy(stream, content)
	if err != nil {
		_ = stream.Abort()
		return nil, fmt.Errorf("file copy failed: %w", err)
	}
	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("upload finalize failed: %w", err)
	}

	fileID, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected file id type %T", stream.FileID)
	}

	return &Attachment{
		ID:         fileID.Hex(),
		PostID:     postID,
		Filename:   filename,
		MimeType:   mimeType,
		Kind:       common.DetectMediaKind(mimeType),
		Size:       size,
		UploadedBy: uploaderID,
		UploadedAt: now,
	}, nil
}

// Download opens the blob of fileID. The caller closes the returned reader.
func (s *AttachmentStorage) Download(ctx context.Context, fileID string) (io.ReadCloser, *Attachment, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid file ID: %w", err)
	}

	stream, err := s.gridFS.OpenDownloadStream(objectID)
	if err != nil {
		return nil, nil, fmt.Errorf("download failed: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetReadDeadline(deadline)
	}

	file := stream.GetFile()
	var metadata bson.M
	if file.Metadata != nil {
		_ = bson.Unmarshal(file.Metadata, &metadata)
	}

	return stream, attachmentFromFile(fileID, file.Name, file.Length, file.UploadDate, metadata), nil
}

func (s *AttachmentStorage) Delete(ctx context.Context, fileID string) error {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return fmt.Errorf("invalid file ID: %w", err)
	}
	return s.gridFS.DeleteContext(ctx, objectID)
}

func attachmentFromFile(fileID, name string, length int64, uploaded time.Time, metadata bson.M) *Attachment {
	mimeType := getStringFromMap(metadata, "mime_type")
	kind := common.MediaKind(getStringFromMap(metadata, "kind"))
	if !kind.IsValid() {
		kind = common.DetectMediaKind(mimeType)
	}
	return &Attachment{
		ID:         fileID,
		PostID:     getStringFromMap(metadata, "post_id"),
		Filename:   name,
		MimeType:   mimeType,
		Kind:       kind,
		Size:       length,
		UploadedBy: getStringFromMap(metadata, "uploaded_by"),
		UploadedAt: uploaded,
	}
}

// Helper function for metadata extraction
func getStringFromMap(m bson.M, key string) string {
	if m == nil {
		return ""
	}
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
