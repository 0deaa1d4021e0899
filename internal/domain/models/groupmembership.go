// internal/domain/models/groupmembership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipActive is the only membership status the group workflow
// writes. The count of active memberships is the authoritative source
// for a group's CurrentMembers field.
const MembershipActive = "active"

// GroupMembership records a student's accepted participation in a group.
// Created exactly once per accepted application, copying the student
// snapshot from the application; never mutated by the group workflow.
type GroupMembership struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	GroupID    primitive.ObjectID `bson:"group_id" json:"groupId"`
	GroupTitle string             `bson:"group_title" json:"groupTitle"`

	StudentID    primitive.ObjectID `bson:"student_id" json:"studentId"`
	StudentName  string             `bson:"student_name" json:"studentName"`
	StudentEmail string             `bson:"student_email" json:"studentEmail"`
	Major        string             `bson:"major" json:"major"`
	YearLevel    string             `bson:"year_level" json:"yearLevel"`

	Status   string    `bson:"status" json:"status"`
	JoinedAt time.Time `bson:"joined_at" json:"joinedAt"`
}
