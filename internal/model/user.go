package model

type User struct {
	ID   int64
	Name string
	// PostIDs holds the user's posts in creation order.
	PostIDs []int64
}

// Creator is the denormalized owner snapshot carried on responses
// and feed events.
type Creator struct {
	ID   int64
	Name string
}
