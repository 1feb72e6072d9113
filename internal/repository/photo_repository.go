package repository

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// PhotoRepository stores image blobs in GridFS. Rows in Postgres keep
// only the durable /api/photos/:id URL.
type PhotoRepository struct {
	DB *mongo.Database
}

func NewPhotoRepository(client *mongo.Client, dbName string) *PhotoRepository {
	return &PhotoRepository{DB: client.Database(dbName)}
}

// Upload stores one file and returns its id (hex) for URL building.
func (r *PhotoRepository) Upload(file multipart.File, filename string) (string, error) {
	bucket, err := gridfs.NewBucket(r.DB)
	if err != nil {
		return "", err
	}

	stream, err := bucket.OpenUploadStream(fmt.Sprintf("%s_%s", uuid.NewString(), filename))
	if err != nil {
		return "", err
	}
	defer stream.Close()

	if _, err := io.Copy(stream, file); err != nil {
		return "", err
	}
	return stream.FileID.(primitive.ObjectID).Hex(), nil
}

func (r *PhotoRepository) Download(photoID string) ([]byte, error) {
	bucket, err := gridfs.NewBucket(r.DB)
	if err != nil {
		return nil, err
	}

	objID, err := primitive.ObjectIDFromHex(photoID)
	if err != nil {
		return nil, err
	}

	stream, err := bucket.OpenDownloadStream(objID)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	return io.ReadAll(stream)
}

func (r *PhotoRepository) Delete(photoID string) error {
	bucket, err := gridfs.NewBucket(r.DB)
	if err != nil {
		return err
	}
	objID, err := primitive.ObjectIDFromHex(photoID)
	if err != nil {
		return err
	}
	return bucket.Delete(objID)
}
