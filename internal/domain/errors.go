package domain

import (
	"errors"
	"fmt"
)

// ValidationError is returned before any store call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s tidak ditemukan", e.Entity, e.Key)
}

// ReferentialIntegrityError blocks deleting a brand that still has phones.
type ReferentialIntegrityError struct {
	Brand      string
	PhoneCount int64
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("Tidak bisa menghapus %q karena masih ada %d smartphone terkait.", e.Brand, e.PhoneCount)
}

// StoreError carries a driver failure. The message is the driver's own.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
