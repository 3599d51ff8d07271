package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"syncBoard/internal/errs"
	"syncBoard/internal/models"
	"syncBoard/internal/msgs"
	"syncBoard/internal/services"

	"github.com/gin-gonic/gin"
)

type RestHandler struct {
	authService        *services.AuthenticationService
	boardService       *services.BoardService
	fileManagerService *services.FileManagerService
}

func NewRestHandler(
	authService *services.AuthenticationService,
	boardService *services.BoardService,
	fileManagerService *services.FileManagerService,
) *RestHandler {
	return &RestHandler{
		authService:        authService,
		boardService:       boardService,
		fileManagerService: fileManagerService,
	}
}

// Register godoc
// @Summary      Register a new user
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Router       /api/register [post]
func (rh *RestHandler) Register(ctx *gin.Context) {
	var errors []error

	var user models.User
	err := ctx.BindJSON(&user)
	if err != nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	_, registerErrs := rh.authService.Register(&user)
	if len(registerErrs) > 0 {
		errors = append(errors, registerErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgUserCreatedSuccessfully,
	})
}

// Login godoc
// @Summary      Login user to account
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Router       /api/login [post]
func (rh *RestHandler) Login(ctx *gin.Context) {
	var errors []error

	var loginData models.LoginRequestBody
	err := ctx.BindJSON(&loginData)
	if err != nil {
		log.Println("Error login data json binding:", err)
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	loginResponse, loginErrs := rh.authService.Login(&loginData)
	if len(loginErrs) > 0 {
		errors = append(errors, loginErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	// The socket handshake reads the same cookie
	ctx.SetCookie("jwt_token", loginResponse.Token, int((24 * time.Hour).Seconds()), "/", "", false, true)

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    loginResponse,
	})
}

func (rh *RestHandler) Logout(ctx *gin.Context) {
	ctx.SetCookie("jwt_token", "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
	})
}

// GetProfile godoc
// @Summary      Get the authenticated user's profile
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Router       /api/profile [get]
func (rh *RestHandler) GetProfile(ctx *gin.Context) {
	profile, profileErrs := rh.authService.GetProfile(rh.userId(ctx))
	if len(profileErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  profileErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    profile,
	})
}

func (rh *RestHandler) SearchUsers(ctx *gin.Context) {
	page, size := rh.pagination(ctx)

	users, searchErrs := rh.authService.SearchUsers(ctx.Query("q"), page, size)
	if len(searchErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  searchErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    users,
	})
}

// CreateBoard godoc
// @Summary      Create a new board
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Router       /api/boards [post]
func (rh *RestHandler) CreateBoard(ctx *gin.Context) {
	var errors []error

	var body models.CreateBoardRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	board, createErrs := rh.boardService.CreateBoard(rh.userId(ctx), &body)
	if len(createErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  createErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgBoardCreatedSuccessfully,
		Data:    board,
	})
}

func (rh *RestHandler) GetBoard(ctx *gin.Context) {
	boardId, err := rh.boardIdFromParam(ctx)
	if err != nil {
		return
	}

	board, getErrs := rh.boardService.GetBoard(boardId, rh.userId(ctx))
	if len(getErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  getErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    board,
	})
}

func (rh *RestHandler) GetUserBoards(ctx *gin.Context) {
	page, size := rh.pagination(ctx)

	boards, getErrs := rh.boardService.GetUserBoards(rh.userId(ctx), page, size)
	if len(getErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  getErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    boards,
	})
}

func (rh *RestHandler) SearchBoards(ctx *gin.Context) {
	page, size := rh.pagination(ctx)
	name := ctx.Query("name")

	boards, searchErrs := rh.boardService.SearchBoards(rh.userId(ctx), name, page, size)
	if len(searchErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  searchErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    boards,
	})
}

func (rh *RestHandler) DeleteBoard(ctx *gin.Context) {
	boardId, err := rh.boardIdFromParam(ctx)
	if err != nil {
		return
	}

	if deleteErrs := rh.boardService.DeleteBoard(boardId, rh.userId(ctx)); len(deleteErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  deleteErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgBoardDeletedSuccessfully,
	})
}

func (rh *RestHandler) AddCollaborator(ctx *gin.Context) {
	boardId, err := rh.boardIdFromParam(ctx)
	if err != nil {
		return
	}

	var body models.CollaboratorRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequestBody},
		})
		return
	}

	if addErrs := rh.boardService.AddCollaborator(boardId, rh.userId(ctx), &body); len(addErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  addErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
	})
}

func (rh *RestHandler) RemoveCollaborator(ctx *gin.Context) {
	boardId, err := rh.boardIdFromParam(ctx)
	if err != nil {
		return
	}

	userIdInt, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil || userIdInt <= 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidParams},
		})
		return
	}

	if removeErrs := rh.boardService.RemoveCollaborator(boardId, rh.userId(ctx), uint(userIdInt)); len(removeErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  removeErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
	})
}

func (rh *RestHandler) UpdateSecurity(ctx *gin.Context) {
	boardId, err := rh.boardIdFromParam(ctx)
	if err != nil {
		return
	}

	var body models.UpdateSecurityRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequestBody},
		})
		return
	}

	if updateErrs := rh.boardService.UpdateSecurity(boardId, rh.userId(ctx), body.Security); len(updateErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  updateErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
	})
}

func (rh *RestHandler) UploadBoardThumbnail(ctx *gin.Context) {
	boardId, err := rh.boardIdFromParam(ctx)
	if err != nil {
		return
	}

	file, header, err := ctx.Request.FormFile("thumbnail")
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequestBody},
		})
		return
	}
	defer file.Close()

	fileName := fmt.Sprintf("board_%d_%d%s", boardId, time.Now().UnixNano(), filepath.Ext(header.Filename))
	url, err := rh.fileManagerService.UploadBoardThumbnail(fileName, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	if updateErrs := rh.boardService.UpdateThumbnail(boardId, rh.userId(ctx), url); len(updateErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  updateErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    url,
	})
}

func (rh *RestHandler) GetBoardChanges(ctx *gin.Context) {
	boardId, err := rh.boardIdFromParam(ctx)
	if err != nil {
		return
	}
	page, size := rh.pagination(ctx)

	changes, getErrs := rh.boardService.GetBoardChanges(boardId, rh.userId(ctx), page, size)
	if len(getErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  getErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    changes,
	})
}

func (rh *RestHandler) userId(ctx *gin.Context) uint {
	return ctx.GetUint("user_id")
}

func (rh *RestHandler) pagination(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		size = 10
	}
	return page, size
}

func (rh *RestHandler) boardIdFromParam(ctx *gin.Context) (uint, error) {
	boardIdInt, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || boardIdInt <= 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidBoardId},
		})
		return 0, errs.ErrInvalidBoardId
	}
	return uint(boardIdInt), nil
}
