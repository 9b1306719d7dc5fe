// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Grade is a school grade level (Lớp 1, Lớp 2, ...).
type Grade struct {
	ID        string `json:"_id"`
	GradeName string `json:"gradeName"`
	Slug      string `json:"slug"`
	Status    bool   `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Subject is a subject taught within a grade.
type Subject struct {
	ID          string `json:"_id"`
	SubjectName string `json:"subjectName"`
	Slug        string `json:"slug"`
	Status      bool   `json:"status"`
	Grade       Ref    `json:"grade"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Level is a course difficulty tier.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// SaleType describes how a sale value applies to a course price.
type SaleType string

const (
	SalePercent SaleType = "percent"
	SaleFixed   SaleType = "fixed"
)

// Sale is an optional discount attached to a course.
type Sale struct {
	SaleType      SaleType `json:"saleType"`
	Value         float64  `json:"value"`
	SaleStartDate string   `json:"saleStartDate,omitempty"`
	SaleEndDate   string   `json:"saleEndDate,omitempty"`
}

// Course is a sellable course. Rating and student counts are server-computed,
// which is why mutations always refetch instead of patching locally.
type Course struct {
	ID               string  `json:"_id"`
	Slug             string  `json:"slug"`
	CourseName       string  `json:"courseName"`
	Description      string  `json:"description,omitempty"`
	Thumbnail        string  `json:"thumbnail,omitempty"`
	Price            float64 `json:"price"`
	Sale             *Sale   `json:"sale,omitempty"`
	Status           bool    `json:"status"`
	Rating           float64 `json:"rating"`
	AverageRating    float64 `json:"averageRating"`
	NumberOfStudents int     `json:"numberOfStudents"`
	Level            Level   `json:"level"`
	TotalDuration    int     `json:"totalDuration"`
	Subject          Ref     `json:"subject"`
	CreatedBy        Ref     `json:"createdBy"`
	CreatedAt        string  `json:"createdAt,omitempty"`
	UpdatedAt        string  `json:"updatedAt,omitempty"`
}

// Chapter is a curriculum section of a course, addressed through the course slug.
type Chapter struct {
	ID          string    `json:"_id"`
	ChapterName string    `json:"chapterName"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	Status      bool      `json:"status"`
	Course      Ref       `json:"course"`
	Lectures    []Lecture `json:"lectures,omitempty"`
	Slug        string    `json:"slug"`
	CreatedAt   string    `json:"createdAt,omitempty"`
	UpdatedAt   string    `json:"updatedAt,omitempty"`
}

// Lecture is a single video lesson within a chapter.
type Lecture struct {
	ID          string `json:"_id"`
	LectureName string `json:"lectureName"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Duration    int    `json:"duration,omitempty"` // seconds
	Order       int    `json:"order"`
	Status      bool   `json:"status"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}
