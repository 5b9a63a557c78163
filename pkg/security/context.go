package security

import "github.com/gin-gonic/gin"

// CurrentUser is the authenticated identity constructed once per
// request from the verified token and passed explicitly through the
// request context. Handlers never read claims themselves.
type CurrentUser struct {
	ID       int
	Username string
}

const currentUserKey = "currentUser"

func setCurrentUser(c *gin.Context, user CurrentUser) {
	c.Set(currentUserKey, user)
}

func CurrentUserFrom(c *gin.Context) (CurrentUser, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return CurrentUser{}, false
	}
	user, ok := value.(CurrentUser)
	return user, ok
}

// SetCurrentUserForTest injects an identity outside the JWT middleware.
func SetCurrentUserForTest(c *gin.Context, user CurrentUser) {
	setCurrentUser(c, user)
}
