package log

import (
	"strings"

	"github.com/thanhminhmr/go-errtrace/configuration"
)

// DefaultComponent returns the COMPONENT variable or, in Kubernetes, the name
// of the deployment derived from the pod host name.
func DefaultComponent() (string, bool) {
	if component, exists := configuration.Lookup("COMPONENT"); exists {
		return component, true
	}
	if _, exists := configuration.Lookup("KUBERNETES_PORT"); exists {
		hostname, _ := configuration.Lookup("HOSTNAME")
		return KubernetesComponent(hostname)
	}
	return "", false
}

// KubernetesComponent strips the replica set and pod suffixes of a pod host
// name: "billing-api-7d9f8b6c5-x2k4q" becomes "billing-api".
func KubernetesComponent(hostname string) (string, bool) {
	podIndex := strings.LastIndexByte(hostname, '-')
	if podIndex <= 1 {
		return "", false
	}
	replicaSetIndex := strings.LastIndexByte(hostname[:podIndex], '-')
	if replicaSetIndex <= 0 {
		return "", false
	}
	return hostname[:replicaSetIndex], true
}
