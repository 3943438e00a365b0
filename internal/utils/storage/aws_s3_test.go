package storage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomObjectName(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-z]+_\d{13}\.png$`)

	first := RandomObjectName("Receipt Photo.PNG")
	second := RandomObjectName("Receipt Photo.PNG")

	assert.Regexp(t, pattern, first)
	assert.Regexp(t, pattern, second)
	assert.NotEqual(t, first, second)
}

func TestIsAllowed(t *testing.T) {
	assert.True(t, IsAllowed("noodles.JPG", AllowImage...))
	assert.True(t, IsAllowed("noodles.webp", AllowImage...))
	assert.False(t, IsAllowed("noodles.exe", AllowImage...))
	assert.False(t, IsAllowed("noodles", AllowImage...))
	assert.True(t, IsAllowed("anything.bin"))
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://product-images.s3.ap-southeast-1.amazonaws.com",
		PublicBaseURL("product-images", "ap-southeast-1", "", ""))
	assert.Equal(t, "http://minio:9000/product-images",
		PublicBaseURL("product-images", "us-east-1", "http://minio:9000/", ""))
	assert.Equal(t, "https://cdn.example.com/images",
		PublicBaseURL("product-images", "us-east-1", "http://minio:9000", "https://cdn.example.com/images/"))
}

func TestPublicLinkRoundTrip(t *testing.T) {
	s := &awsS3{publicURL: "https://cdn.example.com/product-images"}

	link := s.GetPublicLinkKey("abc_1700000000000.jpg")
	assert.Equal(t, "https://cdn.example.com/product-images/abc_1700000000000.jpg", link)
	assert.Equal(t, "abc_1700000000000.jpg", s.GetObjectKeyFromLink(link))
	assert.Equal(t, "", s.GetObjectKeyFromLink("https://elsewhere.example.com/x.jpg"))
}
