package blogservice

import "github.com/himatikom/blogserver/internal/common"

func validateCreateBlog(v *common.Validator, req *CreateBlogRequest) {
	v.Check(req.Title != "", "title", "must be provided")
	v.Check(req.Content != "", "content", "must be provided")
	v.Check(req.Author != "", "author", "must be provided")
}
