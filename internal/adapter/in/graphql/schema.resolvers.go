package graphql

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.
// Code generated by github.com/99designs/gqlgen version v0.17.80

import (
	"context"
	"fmt"
	gqlmodel "socialfeed/internal/adapter/in/graphql/model"
	"socialfeed/internal/auth"
	"socialfeed/internal/service"
)

// CreatePost is the resolver for the createPost field.
func (r *mutationResolver) CreatePost(ctx context.Context, input gqlmodel.PostInput) (*gqlmodel.CreatePostPayload, error) {
	identity, ok := auth.FromContext(ctx)
	if !ok {
		return nil, service.ErrUnauthenticated
	}

	post, creator, err := r.postService.CreatePost(ctx, service.CreatePostRequest{
		UserID:   identity.UserID,
		Title:    input.Title,
		Content:  input.Content,
		ImageURL: input.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	return &gqlmodel.CreatePostPayload{
		Post:    toPostNode(post),
		Creator: toCreatorNode(creator),
	}, nil
}

// UpdatePost is the resolver for the updatePost field.
func (r *mutationResolver) UpdatePost(ctx context.Context, id string, input gqlmodel.PostInput) (*gqlmodel.Post, error) {
	identity, ok := auth.FromContext(ctx)
	if !ok {
		return nil, service.ErrUnauthenticated
	}

	postID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	post, err := r.postService.UpdatePost(ctx, service.UpdatePostRequest{
		PostID:   postID,
		UserID:   identity.UserID,
		Title:    input.Title,
		Content:  input.Content,
		ImageURL: input.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return toPostNode(post), nil
}

// DeletePost is the resolver for the deletePost field.
func (r *mutationResolver) DeletePost(ctx context.Context, id string) (bool, error) {
	identity, ok := auth.FromContext(ctx)
	if !ok {
		return false, service.ErrUnauthenticated
	}

	postID, err := parseID(id)
	if err != nil {
		return false, err
	}

	if err := r.postService.DeletePost(ctx, postID, identity.UserID); err != nil {
		return false, err
	}
	return true, nil
}

// Creator is the resolver for the creator field.
func (r *postResolver) Creator(ctx context.Context, obj *gqlmodel.Post) (*gqlmodel.Creator, error) {
	userID, err := parseID(obj.CreatorID)
	if err != nil {
		return nil, err
	}
	creator, err := r.postService.GetCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCreatorNode(creator), nil
}

// Posts is the resolver for the posts field.
func (r *queryResolver) Posts(ctx context.Context, page *int) (*gqlmodel.PostPage, error) {
	result, err := r.postService.GetPosts(ctx, toPageRequest(page))
	if err != nil {
		return nil, err
	}

	posts := make([]*gqlmodel.Post, 0, len(result.Items))
	for _, p := range result.Items {
		posts = append(posts, toPostNode(p))
	}
	return &gqlmodel.PostPage{
		Posts:      posts,
		TotalItems: int(result.TotalItems),
	}, nil
}

// Post is the resolver for the post field.
func (r *queryResolver) Post(ctx context.Context, id string) (*gqlmodel.Post, error) {
	postID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	post, err := r.postService.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return toPostNode(post), nil
}

// Feed is the resolver for the feed field.
func (r *subscriptionResolver) Feed(ctx context.Context) (<-chan *gqlmodel.FeedEvent, error) {
	events, err := r.postService.Listen(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribing to feed: %w", err)
	}

	out := make(chan *gqlmodel.FeedEvent, 1)
	go func() {
		defer close(out)
		for ev := range events {
			select {
			case out <- toFeedEventNode(ev):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// Post returns PostResolver implementation.
func (r *Resolver) Post() PostResolver { return &postResolver{r} }

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

// Subscription returns SubscriptionResolver implementation.
func (r *Resolver) Subscription() SubscriptionResolver { return &subscriptionResolver{r} }

type mutationResolver struct{ *Resolver }
type postResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type subscriptionResolver struct{ *Resolver }
