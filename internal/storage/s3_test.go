package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL_EndpointOverride(t *testing.T) {
	s := &S3Storage{bucket: "avatars", region: "us-east-1", endpoint: "http://localhost:9000"}
	assert.Equal(t, "http://localhost:9000/avatars/avatars/abc.png", s.objectURL("avatars/abc.png"))
}

func TestObjectURL_VirtualHostedStyle(t *testing.T) {
	s := &S3Storage{bucket: "avatars", region: "eu-west-1"}
	assert.Equal(t, "https://avatars.s3.eu-west-1.amazonaws.com/avatars/abc.png", s.objectURL("avatars/abc.png"))
}
