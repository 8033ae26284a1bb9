package handler

type claimRequest struct {
	Name string `json:"name"`
}

type releaseRequest struct {
	Name string `json:"name"`
}

type setFieldRequest struct {
	Value string `json:"value"`
}

type costRequest struct {
	Cost int64 `json:"cost"`
}
