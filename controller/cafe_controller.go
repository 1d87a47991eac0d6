package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cafedir/media"
	"cafedir/model"
	"cafedir/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const maxImageSize = 5 << 20 // per file

var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// CafeController handles the café CRUD surface and public comment creation.
type CafeController struct {
	Store    *store.Store
	Uploader media.Uploader
}

func NewCafeController(st *store.Store, up media.Uploader) *CafeController {
	return &CafeController{Store: st, Uploader: up}
}

func (cc *CafeController) CreateCafe(c *gin.Context) {
	name := c.PostForm("name")
	address := c.PostForm("address")
	description := c.PostForm("description")
	if name == "" || address == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields",
		})
		return
	}

	facilities := map[string]any{}
	if raw := c.PostForm("facilities"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &facilities); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid facilities format",
			})
			return
		}
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["images"]
	}
	for _, file := range files {
		if file.Size > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Image size exceeds 5MB limit",
			})
			return
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExts[ext] {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid file type, only JPG/JPEG/PNG allowed",
			})
			return
		}
	}

	photos, err := cc.uploadImages(c, files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	newCafe := model.Cafe{
		Name:        name,
		Address:     address,
		Description: description,
		Facilities:  facilities,
		Comments:    []model.Comment{},
		Photos:      photos,
		Likes:       0,
	}

	err = cc.Store.Update(func(cafes []model.Cafe) ([]model.Cafe, error) {
		newCafe.ID = nextID(cafes)
		return append(cafes, newCafe), nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": newCafe})
}

// uploadImages fans each file out to the media host. Results land in an
// indexed slice so photo order always matches submission order, whatever
// order the uploads finish in. One failure fails the whole batch; already
// uploaded images are not rolled back.
func (cc *CafeController) uploadImages(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, len(files))
	g, ctx := errgroup.WithContext(c.Request.Context())

	for i, file := range files {
		g.Go(func() error {
			f, err := file.Open()
			if err != nil {
				return fmt.Errorf("opening %s: %w", file.Filename, err)
			}
			defer f.Close()

			key := fmt.Sprintf("cafe-%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(file.Filename)))
			url, err := cc.Uploader.Upload(ctx, key, file.Header.Get("Content-Type"), f)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// nextID assigns a creation-timestamp id, bumped past any collision so ids
// stay unique even when two cafés are created in the same millisecond.
func nextID(cafes []model.Cafe) int64 {
	id := time.Now().UnixMilli()
	for {
		if _, err := store.FindCafe(cafes, id); errors.Is(err, store.ErrNotFound) {
			return id
		}
		id++
	}
}

func (cc *CafeController) GetAllCafes(c *gin.Context) {
	cafes, err := cc.Store.LoadCafes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cafes})
}

func (cc *CafeController) GetCafeByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid cafe ID format",
		})
		return
	}

	cafes, err := cc.Store.LoadCafes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	cafe, err := store.FindCafe(cafes, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "cafe not found",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cafe})
}

func (cc *CafeController) UpdateCafe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid cafe ID format",
		})
		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}
	// the id is immutable after creation
	delete(patch, "id")

	var updated model.Cafe
	err = cc.Store.Update(func(cafes []model.Cafe) ([]model.Cafe, error) {
		cafe, err := store.FindCafe(cafes, id)
		if err != nil {
			return nil, err
		}
		merged, err := mergeCafe(*cafe, patch)
		if err != nil {
			return nil, err
		}
		*cafe = merged
		updated = merged
		return cafes, nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "cafe not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// mergeCafe overlays the provided top-level keys onto the existing record.
// Keys absent from the patch keep their current values; provided keys
// replace wholesale, last writer wins.
func mergeCafe(existing model.Cafe, patch map[string]any) (model.Cafe, error) {
	raw, err := json.Marshal(existing)
	if err != nil {
		return model.Cafe{}, fmt.Errorf("encoding cafe: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.Cafe{}, fmt.Errorf("decoding cafe: %w", err)
	}
	for k, v := range patch {
		fields[k] = v
	}
	raw, err = json.Marshal(fields)
	if err != nil {
		return model.Cafe{}, fmt.Errorf("encoding merged cafe: %w", err)
	}
	var merged model.Cafe
	if err := json.Unmarshal(raw, &merged); err != nil {
		return model.Cafe{}, fmt.Errorf("decoding merged cafe: %w", err)
	}
	return merged, nil
}

func (cc *CafeController) DeleteCafe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid cafe ID format",
		})
		return
	}

	err = cc.Store.Update(func(cafes []model.Cafe) ([]model.Cafe, error) {
		if _, err := store.FindCafe(cafes, id); err != nil {
			return nil, err
		}
		remaining := make([]model.Cafe, 0, len(cafes)-1)
		for _, cafe := range cafes {
			if cafe.ID != id {
				remaining = append(remaining, cafe)
			}
		}
		return remaining, nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "cafe not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func (cc *CafeController) AddComment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid cafe ID format",
		})
		return
	}

	type Request struct {
		UserID      string `json:"userId"`
		Password    string `json:"password"`
		CommentText string `json:"commentText"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	users, err := cc.Store.LoadUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	if !credentialsValid(users, req.UserID, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid user ID or password.",
		})
		return
	}

	newComment := model.Comment{User: req.UserID, Text: req.CommentText}
	err = cc.Store.Update(func(cafes []model.Cafe) ([]model.Cafe, error) {
		cafe, err := store.FindCafe(cafes, id)
		if err != nil {
			return nil, err
		}
		cafe.Comments = append(cafe.Comments, newComment)
		return cafes, nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Cafe not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "comment": newComment})
}

// credentialsValid accepts both bcrypt-hashed passwords and the plaintext
// values found in pre-existing data files.
func credentialsValid(users []model.User, userID, password string) bool {
	for _, user := range users {
		if user.ID != userID {
			continue
		}
		if strings.HasPrefix(user.Password, "$2") {
			return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
		}
		return user.Password == password
	}
	return false
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
