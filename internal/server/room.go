package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	roomservicedomain "github.com/smallbiznis/boardinghouse/internal/roomservice/domain"
)

func (s *Server) ListRooms(c *gin.Context) {
	var req roomdomain.ListRequest
	if err := bindQuery(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	rooms, err := s.roomSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rooms})
}

func (s *Server) CreateRoom(c *gin.Context) {
	var req roomdomain.CreateRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	room, err := s.roomSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": room})
}

func (s *Server) GetRoom(c *gin.Context) {
	room, err := s.roomSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": room})
}

func (s *Server) UpdateRoom(c *gin.Context) {
	var req roomdomain.UpdateRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	room, err := s.roomSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": room})
}

func (s *Server) DeleteRoom(c *gin.Context) {
	if err := s.roomSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetRoomDetail(c *gin.Context) {
	detail, err := s.detailSvc.Room(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detail})
}

// ListRoomServicesByRoom backs both /rooms/:id/services and /room-services/room/:roomId.
func (s *Server) ListRoomServicesByRoom(c *gin.Context) {
	roomID := c.Param("roomId")
	if roomID == "" {
		roomID = c.Param("id")
	}

	services, err := s.roomServiceSvc.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": services})
}

func (s *Server) CreateRoomService(c *gin.Context) {
	var req roomservicedomain.CreateRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	view, err := s.roomServiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": view})
}

func (s *Server) UpdateRoomService(c *gin.Context) {
	var req roomservicedomain.UpdateRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	view, err := s.roomServiceSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (s *Server) DeleteRoomService(c *gin.Context) {
	if err := s.roomServiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
