package graphql

import (
	"fmt"
	"strconv"

	gqlmodel "socialfeed/internal/adapter/in/graphql/model"
	"socialfeed/internal/model"
	"socialfeed/internal/service"
	"socialfeed/pkg/pagination"
)

func toPostNode(p model.Post) *gqlmodel.Post {
	return &gqlmodel.Post{
		ID:        strconv.FormatInt(p.ID, 10),
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		CreatorID: strconv.FormatInt(p.UserID, 10),
		CreatedAt: p.CreatedAt,
	}
}

func toCreatorNode(c model.Creator) *gqlmodel.Creator {
	return &gqlmodel.Creator{
		ID:   strconv.FormatInt(c.ID, 10),
		Name: c.Name,
	}
}

func toFeedEventNode(ev model.FeedEvent) *gqlmodel.FeedEvent {
	out := &gqlmodel.FeedEvent{Action: string(ev.Action)}
	if ev.Post != nil {
		out.Post = toPostNode(*ev.Post)
	}
	if ev.Creator != nil {
		out.Creator = toCreatorNode(*ev.Creator)
	}
	if ev.Action == model.FeedActionDelete {
		id := strconv.FormatInt(ev.PostID, 10)
		out.PostID = &id
	}
	return out
}

func toPageRequest(page *int) pagination.PageRequest {
	var req pagination.PageRequest
	if page != nil {
		req.Page = *page
	}
	return req
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad id %q", service.ErrInvalidRequest, id)
	}
	return n, nil
}
