package schema

import "time"

const (
	UserCollection = "users"
)

const (
	RoleRequester = "Requester"
	RoleWorker    = "Worker"
	RoleBoth      = "Both"
	RoleAdmin     = "Admin"
)

// User is a resident record of the community directory. Credentials are kept
// by the identity provider and never reach this collection.
type User struct {
	ID            string    `json:"id" bson:"_id"`
	FullName      string    `json:"fullName" bson:"full_name"`
	Email         string    `json:"email" bson:"email"`
	Username      string    `json:"username" bson:"username"`
	PhoneNumber   string    `json:"phoneNumber" bson:"phone_number"`
	ApartmentName string    `json:"apartmentName" bson:"apartment_name"`
	Block         string    `json:"block" bson:"block"`
	FlatNumber    string    `json:"flatNumber" bson:"flat_number"`
	SkillsOffered []string  `json:"skillsOffered" bson:"skills_offered"`
	Availability  []string  `json:"availability" bson:"availability"`
	Location      *Location `json:"location,omitempty" bson:"location,omitempty"`
	Role          string    `json:"role" bson:"role"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicProfile is the part of a user shown to other residents
type PublicProfile struct {
	ID            string   `json:"id"`
	FullName      string   `json:"fullName"`
	ApartmentName string   `json:"apartmentName"`
	Block         string   `json:"block"`
	FlatNumber    string   `json:"flatNumber"`
	SkillsOffered []string `json:"skillsOffered"`
	Availability  []string `json:"availability"`
}

func (u User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:            u.ID,
		FullName:      u.FullName,
		ApartmentName: u.ApartmentName,
		Block:         u.Block,
		FlatNumber:    u.FlatNumber,
		SkillsOffered: u.SkillsOffered,
		Availability:  u.Availability,
	}
}
