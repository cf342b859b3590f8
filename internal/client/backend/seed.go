package backend

import (
	"math/rand"
	"time"

	"github.com/qiwen5/dressup/internal/client/models"
)

// availableAvatars is the full catalog of avatar urls the platform offers.
var availableAvatars = []string{
	"https://cdn.dressup.app/avatars/face1.webp",
	"https://cdn.dressup.app/avatars/face2.webp",
	"https://cdn.dressup.app/avatars/face3.webp",
	"https://cdn.dressup.app/avatars/face4.webp",
}

// placeholderImage picks a random catalog image; used when a character is
// created without an image url.
func placeholderImage() string {
	return availableAvatars[rand.Intn(len(availableAvatars))]
}

func seedUsers() []models.User {
	return []models.User{
		{
			ID:            "1",
			Username:      "ys",
			Email:         "ys@example.com",
			Points:        150,
			Avatars:       append([]string(nil), availableAvatars...),
			CurrentAvatar: availableAvatars[0],
			CreatedAt:     time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			ID:            "2",
			Username:      "alice",
			Email:         "alice@example.com",
			Points:        280,
			Avatars:       append([]string(nil), availableAvatars[:2]...),
			CurrentAvatar: availableAvatars[1],
			CreatedAt:     time.Date(2024, 1, 10, 10, 15, 0, 0, time.UTC),
		},
	}
}

func seedCharacters() []models.Character {
	return []models.Character{
		{
			ID:        "1",
			Name:      "Sakura",
			ImageURL:  placeholderImage(),
			HairStyle: "twin tails",
			HairColor: "pink",
			CreatedAt: time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC),
			UserID:    "1",
		},
		{
			ID:        "2",
			Name:      "Fiona",
			ImageURL:  placeholderImage(),
			HairStyle: "long",
			HairColor: "silver",
			CreatedAt: time.Date(2024, 1, 17, 14, 30, 0, 0, time.UTC),
			UserID:    "1",
		},
		{
			ID:        "3",
			Name:      "Amy",
			ImageURL:  placeholderImage(),
			HairStyle: "short",
			HairColor: "brown",
			CreatedAt: time.Date(2024, 1, 18, 11, 45, 0, 0, time.UTC),
			UserID:    "2",
		},
	}
}
