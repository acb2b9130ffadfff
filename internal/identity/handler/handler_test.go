package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"fayda/internal/identity/handler/mocks"
	"fayda/internal/identity/models"
	"fayda/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type IdentityHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	logs    *bytes.Buffer
}

func TestIdentityHandlerSuite(t *testing.T) {
	suite.Run(t, new(IdentityHandlerSuite))
}

func (s *IdentityHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.service = mocks.NewMockService(ctrl)

	s.logs = &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(s.logs, nil))
	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

func (s *IdentityHandlerSuite) TestValidate() {
	s.Run("valid ID", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/fayda/validate", ValidateRequest{FaydaID: "2205150100000008"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[ValidateResponse](s.T(), rr)
		s.Equal(ValidateResponse{FaydaID: "2205150100000008", IsValid: true}, *resp)
	})

	cases := map[string]string{
		"123456010000000":  "length",
		"22051501000000a8": "non_digit",
		"2205000100000000": "birth_date",
		"9001011200000000": "region",
		"2205150100000009": "checksum",
	}
	for id, reason := range cases {
		s.Run("rejects "+reason, func() {
			req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/fayda/validate", ValidateRequest{FaydaID: id})
			rr := testutil.DoRequest(s.router, req)

			testutil.AssertStatusOK(s.T(), rr)
			resp := testutil.UnmarshalResponse[ValidateResponse](s.T(), rr)
			s.False(resp.IsValid)
			s.Equal(reason, resp.Reason)
		})
	}

	s.Run("malformed body", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/fayda/validate", `{"fayda_id":`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *IdentityHandlerSuite) TestVerify() {
	s.Run("passes the result through", func() {
		record := &models.RegistryRecord{FaydaID: "2205150100000008", FullName: "John Doe", Region: "Tigray", BirthYear: 2022}
		s.service.EXPECT().
			VerifyWorkerID(gomock.Any(), "2205150100000008", "John Doe").
			Return(models.VerificationResult{IsValid: true, IsVerified: true, Details: record}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/fayda/verify", VerifyRequest{FaydaID: "2205150100000008", FullName: "John Doe"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		s.JSONEq(`{
			"is_valid": true,
			"is_verified": true,
			"details": {"fayda_id": "2205150100000008", "full_name": "John Doe", "region": "Tigray", "birth_year": 2022}
		}`, rr.Body.String())
	})

	s.Run("rejections are still 200", func() {
		s.service.EXPECT().
			VerifyWorkerID(gomock.Any(), "bad", "").
			Return(models.VerificationResult{Error: models.ErrMsgInvalidFormat}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/fayda/verify", VerifyRequest{FaydaID: "bad"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		s.JSONEq(`{"is_valid": false, "is_verified": false, "error": "Invalid ID format", "details": null}`, rr.Body.String())
	})

	s.Run("store failure is 503", func() {
		s.service.EXPECT().
			VerifyWorkerID(gomock.Any(), "2205150100000008", "").
			Return(models.VerificationResult{}, errors.New("redis down"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/fayda/verify", VerifyRequest{FaydaID: "2205150100000008"})
		rr := testutil.DoRequest(s.router, testutil.WithRequestID(req, "req-503"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "unavailable")
		s.Contains(s.logs.String(), "level=ERROR")
		s.Contains(s.logs.String(), "request_id=req-503")
	})

	s.Run("unknown fields are rejected", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/fayda/verify", `{"fayda_id":"1","nickname":"x"}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *IdentityHandlerSuite) TestVerifyProfile() {
	s.Run("format failure", func() {
		s.service.EXPECT().
			ValidateAndVerifyProfile(gomock.Any(), "123456010000000", "John Doe").
			Return(models.ProfileResult{Error: models.ErrMsgInvalidProfileFormat}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/profiles/verify", VerifyRequest{FaydaID: "123456010000000", FullName: "John Doe"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "error", "Invalid Fayda ID format or checksum")
	})

	s.Run("name mismatch", func() {
		record := &models.RegistryRecord{FaydaID: "2205150100000008", FullName: "John Doe", Region: "Tigray", BirthYear: 2022}
		s.service.EXPECT().
			ValidateAndVerifyProfile(gomock.Any(), "2205150100000008", "Jane Doe").
			Return(models.ProfileResult{IsValidFormat: true, Error: models.ErrMsgNameMismatch, Details: record}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/profiles/verify", VerifyRequest{FaydaID: "2205150100000008", FullName: "Jane Doe"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[models.ProfileResult](s.T(), rr)
		s.True(resp.IsValidFormat)
		s.False(resp.IsVerified)
		s.Equal(models.ErrMsgNameMismatch, resp.Error)
		s.Equal("John Doe", resp.Details.FullName)
	})
}

func (s *IdentityHandlerSuite) TestRegions() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/fayda/regions"))

	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[RegionsResponse](s.T(), rr)
	s.Len(resp.Regions, 11)
	s.Equal("Addis Ababa", resp.Regions[9].Name)
}
