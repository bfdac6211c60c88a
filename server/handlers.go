package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/strangelove-ventures/ata-devtool/form"
	"github.com/strangelove-ventures/ata-devtool/solana"
	"github.com/strangelove-ventures/ata-devtool/types"
	"github.com/strangelove-ventures/ata-devtool/ui"
)

type submitRequest struct {
	TokenInput     string `json:"tokenInput" form:"tokenInput"`
	OwnerPublicKey string `json:"ownerPublicKey" form:"ownerPublicKey"`
}

type submitResponse struct {
	Accepted     bool               `json:"accepted"`
	Notification *form.Notification `json:"notification"`
	State        form.State         `json:"state"`
}

type resultView struct {
	types.AtaResult
	HasInstruction bool
	ProgramID      string
	ProgramLabel   string
	Keys           []string
}

type pageData struct {
	Tokens       []types.TokenOption
	FallbackIcon string
	State        form.State
	Result       *resultView
	Toasts       []form.Notification
}

// session resolves the caller's session from its cookie, issuing a new one if needed.
func (s *Server) session(c *gin.Context) *Session {
	id, _ := c.Cookie(sessionCookie)
	sess, created := s.sessions.Get(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sess.ID, s.cfg.SessionTTL, "/", "", false, true)
	}
	return sess
}

func (s *Server) getIndex(c *gin.Context) {
	s.render(c, s.session(c))
}

func (s *Server) postIndex(c *gin.Context) {
	sess := s.session(c)

	var req submitRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "unable to parse form")
		return
	}

	sess.Controller.Submit(c.Request.Context(), req.TokenInput, req.OwnerPublicKey)
	s.render(c, sess)
}

func (s *Server) render(c *gin.Context, sess *Session) {
	state := sess.Controller.State()
	data := pageData{
		Tokens:       types.Tokens(),
		FallbackIcon: types.FallbackIconURL,
		State:        state,
		Toasts:       sess.DrainToasts(),
	}
	if res, ok := state.LastResult.Get(); ok {
		data.Result = newResultView(res)
	}
	c.HTML(http.StatusOK, "index.html", data)
}

func newResultView(res types.AtaResult) *resultView {
	v := &resultView{AtaResult: res}
	if ix, ok := res.Instruction.Get(); ok {
		v.HasInstruction = true
		v.ProgramID = ix.ProgramID
		v.ProgramLabel = solana.ProgramLabel(ix.ProgramID)
		v.Keys = ui.KeyLines(res, ix)
	}
	return v
}

func (s *Server) getTokens(c *gin.Context) {
	c.JSON(http.StatusOK, types.Tokens())
}

func (s *Server) postSubmit(c *gin.Context) {
	sess := s.session(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unable to parse request"})
		return
	}

	resp := submitResponse{
		Accepted: sess.Controller.Submit(c.Request.Context(), req.TokenInput, req.OwnerPublicKey),
	}
	if toasts := sess.DrainToasts(); len(toasts) > 0 {
		resp.Notification = &toasts[len(toasts)-1]
	}
	resp.State = sess.Controller.State()

	status := http.StatusOK
	if !resp.Accepted {
		status = http.StatusConflict
	}
	c.JSON(status, resp)
}
