package model

import (
	"errors"
	"fmt"
	"time"
)

// FieldType is the declared kind of a survey field
type FieldType string

const (
	FieldTypeRating       FieldType = "RATING"
	FieldTypeText         FieldType = "TEXT"
	FieldTypeSingleChoice FieldType = "SINGLE_CHOICE"
	FieldTypeMultiChoice  FieldType = "MULTI_CHOICE"
	FieldTypeDate         FieldType = "DATE"
)

// Canonical field ids used by the task and priority analyzers
const (
	FieldTask     = "task"
	FieldSuccess  = "success"
	FieldBlocker  = "blocker"
	FieldPriority = "priority"
)

var (
	ErrValueMismatch    = errors.New("answer value does not match field type")
	ErrRatingOutOfRange = errors.New("rating score outside variant bounds")
	ErrUnknownVariant   = errors.New("unknown rating variant")
	ErrInvalidDate      = errors.New("date answer is not an ISO date")
)

// ChoiceOption is one selectable option of a choice question
type ChoiceOption struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label" bson:"label"`
}

// Question is the label and options shown for a field
type Question struct {
	Label   string         `json:"label" bson:"label"`
	Options []ChoiceOption `json:"options,omitempty" bson:"options,omitempty"`
}

// OptionLabel resolves an option id to its label, falling back to the id
func (q Question) OptionLabel(id string) string {
	for _, o := range q.Options {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

// AnswerValue is the tagged union of answer payloads
type AnswerValue interface {
	FieldType() FieldType
	isAnswerValue()
}

// RatingVariant is the display variant of a rating field
type RatingVariant string

const (
	VariantEmoji  RatingVariant = "emoji"
	VariantStars  RatingVariant = "stars"
	VariantThumbs RatingVariant = "thumbs"
	VariantNPS    RatingVariant = "nps"
)

type ratingBounds struct{ min, max int }

var variantBounds = map[RatingVariant]ratingBounds{
	VariantEmoji:  {1, 5},
	VariantStars:  {1, 5},
	VariantThumbs: {0, 1},
	VariantNPS:    {0, 10},
}

// RatingBounds returns the inclusive score bounds of a variant
func RatingBounds(v RatingVariant) (int, int, bool) {
	b, ok := variantBounds[v]
	return b.min, b.max, ok
}

type RatingValue struct {
	Score   int           `json:"score"`
	Variant RatingVariant `json:"variant"`
	Scale   int           `json:"scale"`
}

type TextValue struct {
	Text string `json:"text"`
}

type SingleChoiceValue struct {
	OptionID string `json:"optionId"`
}

type MultiChoiceValue struct {
	OptionIDs []string `json:"optionIds"`
}

type DateValue struct {
	ISODate string `json:"isoDate"`
}

func (RatingValue) FieldType() FieldType       { return FieldTypeRating }
func (TextValue) FieldType() FieldType         { return FieldTypeText }
func (SingleChoiceValue) FieldType() FieldType { return FieldTypeSingleChoice }
func (MultiChoiceValue) FieldType() FieldType  { return FieldTypeMultiChoice }
func (DateValue) FieldType() FieldType         { return FieldTypeDate }

func (RatingValue) isAnswerValue()       {}
func (TextValue) isAnswerValue()         {}
func (SingleChoiceValue) isAnswerValue() {}
func (MultiChoiceValue) isAnswerValue()  {}
func (DateValue) isAnswerValue()         {}

// Answer is one field of a submission
type Answer struct {
	FieldID   string      `json:"fieldId"`
	FieldType FieldType   `json:"fieldType"`
	Question  Question    `json:"question"`
	Value     AnswerValue `json:"value"`
}

// NewAnswer builds an answer and enforces the tag and rating invariants
func NewAnswer(fieldID string, fieldType FieldType, q Question, v AnswerValue) (Answer, error) {
	a := Answer{FieldID: fieldID, FieldType: fieldType, Question: q, Value: v}
	if err := a.Validate(); err != nil {
		return Answer{}, err
	}
	return a, nil
}

// Validate checks the value tag against FieldType and rating bounds
func (a Answer) Validate() error {
	if a.Value == nil || a.Value.FieldType() != a.FieldType {
		return ErrValueMismatch
	}
	switch v := a.Value.(type) {
	case RatingValue:
		lo, hi, ok := RatingBounds(v.Variant)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownVariant, v.Variant)
		}
		if v.Score < lo || v.Score > hi {
			return fmt.Errorf("%w: %d not in %d..%d", ErrRatingOutOfRange, v.Score, lo, hi)
		}
	case DateValue:
		if _, err := time.Parse(time.DateOnly, v.ISODate); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

// Text returns the text payload, if any
func (a Answer) Text() (string, bool) {
	v, ok := a.Value.(TextValue)
	return v.Text, ok
}
