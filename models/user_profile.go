package models

// UserProfile defines the structure for user accounts
type UserProfile struct {
	UserID    string   `dynamodbav:"userId" json:"userId"`                       // ✅ Partition Key
	Name      string   `dynamodbav:"name,omitempty" json:"name,omitempty"`       // Display name
	Email     string   `dynamodbav:"email,omitempty" json:"email,omitempty"`     // Indexed via GSI
	Bio       string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`         // Short biography
	Latitude  float64  `dynamodbav:"latitude,omitempty" json:"latitude,omitempty"`   // Latitude of the user's location (0 = unknown)
	Longitude float64  `dynamodbav:"longitude,omitempty" json:"longitude,omitempty"` // Longitude of the user's location (0 = unknown)
	Photos    []string `dynamodbav:"photos,omitempty" json:"photos,omitempty"`   // User photos
	CreatedAt string   `dynamodbav:"createdAt" json:"createdAt"`                 // Timestamp of account creation
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "Users"

// EmailIndex is the GSI used to look profiles up by email
const EmailIndex = "email-index"
