// Package models defines the domain documents stored in the remote
// document database, together with the application error taxonomy.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seeking-age defaults applied when a profile document omits the range.
const (
	DefaultMinSeekingAge = 18
	DefaultMaxSeekingAge = 40
)

// User is a dating profile document. It is keyed by the uid string and
// overwritten wholesale on every profile save.
type User struct {
	UID           string    `bson:"_id" json:"uid"`
	Name          string    `bson:"fullname" json:"name"`
	Email         string    `bson:"email" json:"email"`
	Age           int       `bson:"age" json:"age"`
	ImageURLs     []string  `bson:"imageURLs" json:"image_urls"`
	Profession    string    `bson:"profession" json:"profession"`
	Bio           string    `bson:"bio" json:"bio"`
	MinSeekingAge int       `bson:"minSeekingAge" json:"min_seeking_age"`
	MaxSeekingAge int       `bson:"maxSeekingAge" json:"max_seeking_age"`
	PasswordHash  string    `bson:"passwordHash,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"createdAt,omitempty" json:"created_at"`
}

// UserFromDocument builds a User from a raw store document. Every field
// tolerates absence by falling back to its documented default: empty
// string, zero, empty slice, and the 18-40 seeking range.
func UserFromDocument(doc bson.M) *User {
	u := &User{
		UID:           stringField(doc, "_id"),
		Name:          stringField(doc, "fullname"),
		Email:         stringField(doc, "email"),
		Age:           intField(doc, "age"),
		ImageURLs:     stringSliceField(doc, "imageURLs"),
		Profession:    stringField(doc, "profession"),
		Bio:           stringField(doc, "bio"),
		MinSeekingAge: intField(doc, "minSeekingAge"),
		MaxSeekingAge: intField(doc, "maxSeekingAge"),
		PasswordHash:  stringField(doc, "passwordHash"),
	}
	// The driver decodes BSON datetimes into primitive.DateTime when the
	// target is bson.M.
	switch v := doc["createdAt"].(type) {
	case primitive.DateTime:
		u.CreatedAt = v.Time()
	case time.Time:
		u.CreatedAt = v
	}
	u.ApplyDefaults()
	return u
}

// ApplyDefaults normalizes an unset seeking range to the documented defaults.
func (u *User) ApplyDefaults() {
	if u.MinSeekingAge == 0 {
		u.MinSeekingAge = DefaultMinSeekingAge
	}
	if u.MaxSeekingAge == 0 {
		u.MaxSeekingAge = DefaultMaxSeekingAge
	}
	if u.ImageURLs == nil {
		u.ImageURLs = []string{}
	}
}

// PrimaryImageURL returns the user's first image URL, if any.
func (u *User) PrimaryImageURL() (string, bool) {
	if len(u.ImageURLs) == 0 {
		return "", false
	}
	return u.ImageURLs[0], true
}

func stringField(doc bson.M, key string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return ""
}

func intField(doc bson.M, key string) int {
	switch v := doc[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func stringSliceField(doc bson.M, key string) []string {
	switch v := doc[key].(type) {
	case []string:
		return v
	case bson.A:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}
