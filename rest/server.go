package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	trp "github.com/jicksta/tideman"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type createElectionRequest struct {
	ID         string   `json:"id" binding:"required"`
	Candidates []string `json:"candidates"`
}

// resultsView is the JSON body returned for a counted election.
type resultsView struct {
	*trp.ElectionResults
	Tally  [][]int64   `json:"tally"`
	Locked [][2]string `json:"locked"`
}

func newResultsView(results *trp.ElectionResults) resultsView {
	var locked [][2]string
	for _, edge := range results.Locked.Edges() {
		locked = append(locked, [2]string{results.Candidates[edge[0]], results.Candidates[edge[1]]})
	}
	return resultsView{
		ElectionResults: results,
		Tally:           results.Tally.Matrix(),
		Locked:          locked,
	}
}

// NewRouter serves the election store over HTTP.
func NewRouter(store trp.ElectionStore, logger logrus.FieldLogger) *gin.Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithField("component", "rest")

	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())

	r.GET("/elections", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.GetElections())
	})

	r.POST("/elections", func(c *gin.Context) {
		var req createElectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		election, err := store.CreateElection(req.ID, req.Candidates)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, election)
	})

	r.GET("/elections/:electionID", func(c *gin.Context) {
		election, err := store.GetElection(c.Param("electionID"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, newResultsView(election.Results()))
	})

	r.DELETE("/elections/:electionID", func(c *gin.Context) {
		store.RemoveElection(c.Param("electionID"))
		c.Status(http.StatusNoContent)
	})

	r.POST("/elections/:electionID/ballots", func(c *gin.Context) {
		ballot := &trp.Ballot{}
		if err := c.ShouldBindJSON(ballot); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		results, err := store.SaveBallot(c.Param("electionID"), ballot)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, newResultsView(results))
	})

	r.DELETE("/elections/:electionID/ballots/:voterID", func(c *gin.Context) {
		results, err := store.RemoveBallot(c.Param("electionID"), c.Param("voterID"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, newResultsView(results))
	})

	return r
}

func statusFor(err error) int {
	switch errors.Cause(err) {
	case trp.ErrElectionNotFound:
		return http.StatusNotFound
	case trp.ErrElectionExists:
		return http.StatusConflict
	case trp.ErrInvalidBallot:
		return http.StatusUnprocessableEntity
	case trp.ErrNoCandidates, trp.ErrTooManyCandidates, trp.ErrDuplicateCandidate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Info("request")
	}
}
