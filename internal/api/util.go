package api

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wacky444/Zarka-sub000/internal/constants"
)

var joinCodeRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

func normalizeJoinCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// playerID extracts the caller's player id from the request header. The
// engine has no account system; the id minted on join is the identity.
func playerID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(constants.HeaderPlayerID))
}
