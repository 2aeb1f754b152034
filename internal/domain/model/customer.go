package model

// Customer is a business partner the order is raised for.
type Customer struct {
	Code  string
	Name  string
	Email string
}
